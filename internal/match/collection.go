// Package match implements the bijective best-match selection that backs
// compare_parts for every collection-valued entity attribute.
package match

import (
	"math"
	"sort"

	"github.com/oxhq/detectsim/internal/report"
	"github.com/oxhq/detectsim/internal/settings"
)

// Collection performs the hierarchical bijective match described by the
// compare_parts algorithm: a fast-scan size-mismatch gate, a full cartesian
// cross-compare, a greedy maximum-weight assignment (each element consumed at
// most once on either side), and a NotFound penalty report for every element
// left unmatched.
//
// self and other are the enclosing entities (used only to label the zero- and
// gate-reports); a and b are the collections being matched; cmp compares one
// element of a against one of b. notFound is the sentinel entity substituted
// for an unmatched counterpart.
func Collection[T report.Entity](
	self, other report.Entity,
	a, b []T,
	fastScan bool,
	cfg *settings.Config,
	notFound report.Entity,
	cmp func(x, y T, fastScan bool) report.Report,
) report.Report {
	if len(a) == 0 || len(b) == 0 {
		return report.New(0, 0, self, other)
	}

	if fastScan {
		skip := 1 - math.Sqrt(math.Abs(float64(len(a)-len(b)))/float64(len(a)+len(b)))
		if skip < cfg.SkipAttrListThreshold {
			return report.New(0, 10, self, other)
		}
	}

	type candidate struct {
		i, j int
		rep  report.Report
	}

	candidates := make([]candidate, 0, len(a)*len(b))
	for i, x := range a {
		for j, y := range b {
			candidates = append(candidates, candidate{i, j, cmp(x, y, fastScan)})
		}
	}

	// Stable descending sort by (probability, weight): equal-score candidates
	// keep their cartesian-product insertion order, which pins the bijective
	// assignment deterministically as spec'd.
	sort.SliceStable(candidates, func(p, q int) bool {
		return report.Less(candidates[q].rep, candidates[p].rep)
	})

	usedA := make([]bool, len(a))
	usedB := make([]bool, len(b))
	acc := report.New(0, 0, self, other)

	for _, c := range candidates {
		if usedA[c.i] || usedB[c.j] {
			continue
		}
		usedA[c.i] = true
		usedB[c.j] = true
		acc = report.Combine(acc, c.rep)
	}

	for i, used := range usedA {
		if !used {
			acc = report.Combine(acc, report.New(0, 10, a[i], notFound))
		}
	}
	for j, used := range usedB {
		if !used {
			acc = report.Combine(acc, report.New(0, 10, notFound, b[j]))
		}
	}

	return acc
}
