// Package splitsfile loads and saves TOML run definitions.
package splitsfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tuisplit/tuisplit/internal/run"
	"github.com/tuisplit/tuisplit/internal/timing"
)

// File is the on-disk shape of a run definition.
type File struct {
	Game     string        `toml:"game"`
	Category string        `toml:"category"`
	Offset   string        `toml:"offset"`
	Attempts int           `toml:"attempts"`
	Segments []SegmentFile `toml:"segments"`
}

// SegmentFile is one segment entry. Times are duration strings in the
// formatter's own shapes ("1:04:05.99"); empty means not recorded.
type SegmentFile struct {
	Name string `toml:"name"`
	// PB is the cumulative split time of the personal-best run.
	PB string `toml:"pb"`
	// Gold is the best recorded duration for this segment.
	Gold string `toml:"gold"`
}

// Load reads a splits file and builds the run it defines.
func Load(path string) (*run.Run, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to decode splits file: %w", err)
	}
	if len(f.Segments) == 0 {
		return nil, fmt.Errorf("splits file %s defines no segments", path)
	}

	r := &run.Run{
		Game:         f.Game,
		Category:     f.Category,
		AttemptCount: f.Attempts,
	}
	if f.Offset != "" {
		offset, err := timing.Parse(f.Offset)
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %w", err)
		}
		r.Offset = offset
	}

	for i, sf := range f.Segments {
		if sf.Name == "" {
			return nil, fmt.Errorf("segment %d has no name", i+1)
		}
		seg := run.NewSegment(sf.Name)
		if sf.PB != "" {
			span, err := timing.Parse(sf.PB)
			if err != nil {
				return nil, fmt.Errorf("segment %q: invalid pb time: %w", sf.Name, err)
			}
			seg.SetComparison(run.ComparisonPersonalBest, run.RealOnly(span))
		}
		if sf.Gold != "" {
			span, err := timing.Parse(sf.Gold)
			if err != nil {
				return nil, fmt.Errorf("segment %q: invalid gold time: %w", sf.Name, err)
			}
			seg.BestSegment = run.RealOnly(span)
		}
		r.Segments = append(r.Segments, seg)
	}
	return r, nil
}

// Save writes the run definition back to a splits file, preserving
// updated comparisons, golds, and the attempt count.
func Save(path string, r *run.Run) error {
	f := File{
		Game:     r.Game,
		Category: r.Category,
		Attempts: r.AttemptCount,
	}
	if r.Offset != 0 {
		f.Offset = timing.FormatSigned(r.Offset, "h:m:s.ddd")
	}
	for i := range r.Segments {
		seg := &r.Segments[i]
		sf := SegmentFile{Name: seg.Name}
		if pb := seg.Comparison(run.ComparisonPersonalBest).RealTime; pb != nil {
			sf.PB = timing.Format(*pb, "h:m:s.ddd")
		}
		if gold := seg.BestSegment.RealTime; gold != nil {
			sf.Gold = timing.Format(*gold, "h:m:s.ddd")
		}
		f.Segments = append(f.Segments, sf)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create splits directory: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create splits file: %w", err)
	}
	enc := toml.NewEncoder(out)
	if err := enc.Encode(f); err != nil {
		if cerr := out.Close(); cerr != nil {
			// Best-effort close on encode failure.
			_ = cerr
		}
		return fmt.Errorf("failed to encode splits file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close splits file: %w", err)
	}
	return nil
}

// Template returns a starter splits file for tuisplit init.
func Template() string {
	return `# tuisplit run definition
game = "My Game"
category = "Any%"
# offset shifts the clock start, e.g. "-1.5" to count up from -1.5s.
offset = "0"
attempts = 0

[[segments]]
name = "First Segment"
# pb   = "1:02.50"   # cumulative split time of the personal best
# gold = "58.20"     # best recorded duration for this segment

[[segments]]
name = "Second Segment"
`
}
