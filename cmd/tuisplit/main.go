// Package main provides the CLI entrypoint for tuisplit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tuisplit/tuisplit/internal/config"
	"github.com/tuisplit/tuisplit/internal/historyui"
	"github.com/tuisplit/tuisplit/internal/run"
	"github.com/tuisplit/tuisplit/internal/splitsfile"
	"github.com/tuisplit/tuisplit/internal/stats"
	"github.com/tuisplit/tuisplit/internal/store"
	"github.com/tuisplit/tuisplit/internal/tui"
)

const terminalWidthBackup = 80

var (
	timerComparison string
	timerMethod     string
	timerNoHistory  bool

	historyAll bool

	initForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuisplit <splits-file>",
		Short:         "TUI speedrun timer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTimerCmd,
	}

	rootCmd.Flags().StringVar(&timerComparison, "comparison", "", "comparison name (default: config or Personal Best)")
	rootCmd.Flags().StringVar(&timerMethod, "timing-method", "", "real-time or game-time")
	rootCmd.Flags().BoolVar(&timerNoHistory, "no-history", false, "skip loading and recording attempt history")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runTimerCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("comparison") {
		fileCfg.General.Comparison = timerComparison
	}
	if cmd.Flags().Changed("timing-method") {
		fileCfg.General.TimingMethod = timerMethod
	}
	if err := validateConfig(fileCfg); err != nil {
		return err
	}

	splitsPath := args[0]
	r, err := splitsfile.Load(splitsPath)
	if err != nil {
		return fmt.Errorf("failed to load splits file: %w", err)
	}

	var st *store.Store
	if !timerNoHistory {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		if err := seedHistory(r, st); err != nil {
			logErrf("failed to load attempt history: %v\n", err)
		}
	}

	timer := run.NewTimer(r)
	timer.SetCurrentComparison(fileCfg.General.Comparison)
	timer.SetCurrentTimingMethod(run.ParseTimingMethod(fileCfg.General.TimingMethod))

	model := tui.NewModel(timer, fileCfg, st, splitsPath)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// seedHistory folds stored golds and the fastest completed attempt
// into the run, so the splits file and the database agree.
func seedHistory(r *run.Run, st *store.Store) error {
	ctx := context.Background()
	golds, err := st.BestSegments(ctx, r.Key())
	if err != nil {
		return fmt.Errorf("failed to query best segments: %w", err)
	}
	pb, err := st.PersonalBest(ctx, r.Key())
	if err != nil {
		return fmt.Errorf("failed to query personal best: %w", err)
	}
	r.ApplyHistory(golds, pb)
	return nil
}

func validateConfig(cfg config.FileConfig) error {
	switch cfg.General.TimingMethod {
	case "real-time", "game-time":
	default:
		return fmt.Errorf("invalid timing method %q (want real-time or game-time)", cfg.General.TimingMethod)
	}
	switch cfg.General.SplitFormat {
	case "time", "diff":
	default:
		return fmt.Errorf("invalid split format %q (want time or diff)", cfg.General.SplitFormat)
	}
	if cfg.General.Comparison == "" {
		return fmt.Errorf("comparison name must not be empty")
	}
	return nil
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <splits-file>",
		Short: "Write a starter splits file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInitCmd,
	}
	cmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	return cmd
}

func runInitCmd(_ *cobra.Command, args []string) error {
	path := args[0]
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat splits file: %w", err)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create splits directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(splitsfile.Template()), 0o644); err != nil {
		return fmt.Errorf("failed to write splits file: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <splits-file>",
		Short: "Print an attempt summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runStatsCmd,
	}
}

func runStatsCmd(cmd *cobra.Command, args []string) error {
	r, err := splitsfile.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load splits file: %w", err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	attempts, err := st.ListAttempts(ctx, r.Key())
	if err != nil {
		return fmt.Errorf("failed to list attempts: %w", err)
	}
	golds, err := st.BestSegments(ctx, r.Key())
	if err != nil {
		return fmt.Errorf("failed to query best segments: %w", err)
	}

	if err := stats.RenderSummary(cmd.OutOrStdout(), attempts, golds, terminalWidth()); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [splits-file]",
		Short: "Browse attempt history",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHistoryCmd,
	}
	cmd.Flags().BoolVar(&historyAll, "all", false, "show attempts across all runs")
	return cmd
}

func runHistoryCmd(_ *cobra.Command, args []string) error {
	runKey := ""
	if !historyAll {
		if len(args) == 0 {
			return fmt.Errorf("splits file required unless --all is set")
		}
		r, err := splitsfile.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load splits file: %w", err)
		}
		runKey = r.Key()
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	model := historyui.NewModel(st, runKey)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func defaultConfigTemplate() string {
	return `# tuisplit configuration
# Uncomment a value to change it.

[general]
# comparison = "Personal Best"   # Comparison run for diffs
# timing-method = "real-time"    # "real-time" or "game-time"
# split-format = "diff"          # Finished splits as "diff" or "time"

[format.timer]
# show-hours = true
# show-minutes = true
# show-seconds = true
# show-decimals = true
# decimal-places = 2
# dynamic = true                 # Widen the pattern as the run grows

[format.split]
# show-hours = true
# show-minutes = true
# show-seconds = true
# show-decimals = true
# decimal-places = 2
# dynamic = false

[format.segment]
# show-hours = true
# show-minutes = true
# show-seconds = true
# show-decimals = true
# decimal-places = 2
# dynamic = true
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
