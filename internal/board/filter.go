// Package board contains the pure, stateless transformations behind the
// dashboard: filtering, metrics, kanban grouping, the timeline, and the
// follow-up policy. Everything here operates on an already-loaded lead
// slice and never talks to the backend.
package board

import (
	"sort"

	"leadboard-engine/internal/lead"
)

// FilterOpts narrows the table. An empty (or "All") value passes
// everything for that dimension; the three predicates are ANDed.
type FilterOpts struct {
	Industry string
	Priority string
	Status   string
}

func match(want, got string) bool {
	return want == "" || want == "All" || want == got
}

func Filter(leads []lead.Lead, opts FilterOpts) []lead.Lead {
	out := make([]lead.Lead, 0, len(leads))
	for _, l := range leads {
		if !match(opts.Industry, l.Industry) {
			continue
		}
		if !match(opts.Priority, l.Priority) {
			continue
		}
		if !match(opts.Status, l.Status) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Industries returns the sorted distinct industries present, for the
// filter dropdown.
func Industries(leads []lead.Lead) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range leads {
		if l.Industry == "" || seen[l.Industry] {
			continue
		}
		seen[l.Industry] = true
		out = append(out, l.Industry)
	}
	sort.Strings(out)
	return out
}
