package plan

import (
	"errors"
	"fmt"
	"sort"

	"seasonfix/internal/episode"
	"seasonfix/internal/spec"
)

// Entry proposes renaming one file.
type Entry struct {
	Original string
	Target   string
}

// Skip records a file excluded from the plan and why.
type Skip struct {
	Name   string
	Reason error
}

// Plan is the complete set of proposed renames for one run. Entries are
// ordered by original name so apply order, and therefore partial-failure
// reporting, is deterministic.
type Plan struct {
	Entries []Entry
	// Skips lists files that failed extraction or resolution. These are
	// reported, never fatal.
	Skips []Skip
	// Unchanged lists files already in the target form.
	Unchanged []string
}

// ConflictError reports two source files claiming the same target name.
// A conflict aborts planning outright: nothing is renamed until the
// specification or the files are fixed.
type ConflictError struct {
	Target string
	First  string
	Second string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("both %q and %q would become %q", e.First, e.Second, e.Target)
}

// Build maps every filename through the extractor and the season table.
// Files that fail either step land on the skip list; a target-name
// collision fails the whole plan.
func Build(files []string, table *spec.Table) (*Plan, error) {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	p := &Plan{}
	claimed := make(map[string]string, len(sorted))

	// Files already in the target form keep their names, so they claim
	// them up front and surface collisions with planned renames.
	for _, name := range sorted {
		if episode.IsFormatted(name) {
			p.Unchanged = append(p.Unchanged, name)
			claimed[name] = name
		}
	}

	for _, name := range sorted {
		if episode.IsFormatted(name) {
			continue
		}

		ex, err := episode.Extract(name)
		if err != nil {
			var unrec *episode.UnrecognizedError
			if errors.As(err, &unrec) {
				p.Skips = append(p.Skips, Skip{Name: name, Reason: err})
				continue
			}
			return nil, err
		}

		pos, err := table.Resolve(ex.Number)
		if err != nil {
			var unmapped *spec.UnmappedError
			if errors.As(err, &unmapped) {
				p.Skips = append(p.Skips, Skip{Name: name, Reason: err})
				continue
			}
			return nil, err
		}

		target := episode.FormatName(pos.Season, pos.Episode, ex.Title, ex.Ext)
		if owner, taken := claimed[target]; taken {
			return nil, &ConflictError{Target: target, First: owner, Second: name}
		}
		claimed[target] = name
		p.Entries = append(p.Entries, Entry{Original: name, Target: target})
	}

	return p, nil
}
