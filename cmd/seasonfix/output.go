package main

import (
	"fmt"
	"io"
	"strconv"

	"seasonfix/internal/plan"
	"seasonfix/internal/renamer"
	"seasonfix/internal/spec"
)

func printPlan(w io.Writer, p *plan.Plan, dryRun bool) {
	if dryRun {
		fmt.Fprintln(w, "Dry run - no files will be renamed.")
	}

	if len(p.Entries) > 0 {
		if isTerminal(w) {
			rows := make([][]string, 0, len(p.Entries))
			for _, entry := range p.Entries {
				rows = append(rows, []string{entry.Original, entry.Target})
			}
			fmt.Fprintln(w, renderTable([]string{"From", "To"}, rows, nil))
		} else {
			for _, entry := range p.Entries {
				fmt.Fprintf(w, "%s -> %s\n", entry.Original, entry.Target)
			}
		}
	}

	for _, skip := range p.Skips {
		fmt.Fprintf(w, "Skipping %s: %v\n", skip.Name, skip.Reason)
	}
	if len(p.Unchanged) > 0 {
		fmt.Fprintf(w, "%d file(s) already named correctly.\n", len(p.Unchanged))
	}
}

func printSeasonTable(w io.Writer, t *spec.Table) {
	ranges := t.Ranges()
	if isTerminal(w) {
		rows := make([][]string, 0, len(ranges))
		for _, r := range ranges {
			rows = append(rows, []string{
				strconv.Itoa(r.Season),
				fmt.Sprintf("%d-%d", r.Start, r.End),
				strconv.Itoa(r.End - r.Start + 1),
			})
		}
		fmt.Fprintln(w, renderTable([]string{"Season", "Episodes", "Count"},
			rows, []columnAlignment{alignRight, alignLeft, alignRight}))
		return
	}
	for _, r := range ranges {
		fmt.Fprintf(w, "Season %d: episodes %d-%d\n", r.Season, r.Start, r.End)
	}
}

func printPartialApply(w io.Writer, applyErr *renamer.ApplyError) {
	for _, entry := range applyErr.Done {
		fmt.Fprintf(w, "Renamed: %s -> %s\n", entry.Original, entry.Target)
	}
	fmt.Fprintf(w, "Failed: %s -> %s (%v)\n", applyErr.Failed.Original, applyErr.Failed.Target, applyErr.Err)
	for _, entry := range applyErr.Remaining {
		fmt.Fprintf(w, "Not applied: %s -> %s\n", entry.Original, entry.Target)
	}
	fmt.Fprintf(w, "Run stopped after %d of %d renames; the backup record was kept, so 'seasonfix restore' can undo the applied subset.\n",
		len(applyErr.Done), len(applyErr.Done)+1+len(applyErr.Remaining))
}
