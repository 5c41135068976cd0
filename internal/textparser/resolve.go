package textparser

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ResolveOverlaps drops candidates whose description is a strict substring of
// a longer candidate's description for the same amount and date. Longer spans
// are considered first. Survivors are returned in discovery order.
func ResolveOverlaps(candidates []Candidate) []Candidate {
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return utf8.RuneCountInString(candidates[order[a]].Description()) >
			utf8.RuneCountInString(candidates[order[b]].Description())
	})

	kept := make([]int, 0, len(candidates))
	for _, i := range order {
		c := candidates[i]
		covered := false
		for _, k := range kept {
			if isPartialOf(c, candidates[k]) {
				covered = true
				break
			}
		}
		if !covered {
			kept = append(kept, i)
		}
	}

	sort.Ints(kept)
	out := make([]Candidate, len(kept))
	for n, i := range kept {
		out[n] = candidates[i]
	}
	return out
}

// isPartialOf reports whether short is a fragment of long for the same event.
func isPartialOf(short, long Candidate) bool {
	s, l := short.Description(), long.Description()
	return len(s) < len(l) && strings.Contains(l, s) && sameEvent(short, long)
}

// Deduplicate collapses candidates with the same amount (within a cent), date
// and description. First seen wins.
func Deduplicate(candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		dup := false
		for _, seen := range out {
			if seen.Description() == c.Description() && sameEvent(seen, c) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}
