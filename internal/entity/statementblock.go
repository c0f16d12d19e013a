package entity

import (
	"fmt"

	"github.com/oxhq/detectsim/internal/report"
	"github.com/oxhq/detectsim/internal/settings"
)

// StatementBlock summarizes one top-level statement of a method/function body
// as a histogram of tree-sitter node-kind occurrences, computed once at
// construction time (§3 invariant 5: never mutated during comparison).
type StatementBlock struct {
	BlockName string
	Language  string
	Histogram map[string]int
	Cfg       *settings.Config

	// InvokedNames lists the bare callee names this block's call expressions
	// reference, populated by the parse adapter at construction time (it has
	// no access to the rest of the project's methods yet).
	InvokedNames []string

	// InvokedMethods lists the Methods this block's call expressions resolve
	// to within the same project, used to build Method.AllBlocks (own body
	// plus reachable bodies, excluding direct self-recursion). Populated from
	// InvokedNames by Project.Resolve, once every File's methods are known.
	InvokedMethods []*Method
}

func (s *StatementBlock) Name() string    { return s.BlockName }
func (s *StatementBlock) Visualise() bool { return false }
func (s *StatementBlock) Kind() string    { return KindStatementBlock }

func (s *StatementBlock) Compare(other report.Entity, fastScan bool) report.Report {
	o, ok := other.(*StatementBlock)
	if !ok {
		panic(fmt.Sprintf("entity: cannot compare StatementBlock with %T", other))
	}
	fwd := s.compareOneWay(o)
	if !s.Cfg.SymmetricStatementBlocks {
		return fwd
	}
	bwd := o.compareOneWay(s)
	weight := fwd.Weight + bwd.Weight
	if weight == 0 {
		return report.New(0, 0, s, o)
	}
	avgProb := (fwd.Probability*fwd.Weight + bwd.Probability*bwd.Weight) / weight
	return report.New(avgProb, weight, s, o)
}

// compareOneWay walks self's histogram against other's, the asymmetric (self
// biased) default comparator: for each node kind present in self, look up the
// same kind in other; absent a direct hit, consult the node-translation table
// for a half-credit soft match; absent both, score zero. Node kinds present
// only in other contribute nothing, a documented asymmetry (§4.3).
func (s *StatementBlock) compareOneWay(o *StatementBlock) report.Report {
	acc := report.New(0, 0, s, o)
	translation := s.Cfg.NodeTranslation[s.Language]
	for kind, selfCount := range s.Histogram {
		if otherCount, ok := o.Histogram[kind]; ok && otherCount > 0 {
			acc = report.Combine(acc, report.New(histogramScore(selfCount, otherCount), 10, s, o))
			continue
		}
		if fallback, ok := translation[kind]; ok && fallback != "" {
			if otherCount, ok := o.Histogram[fallback]; ok && otherCount > 0 {
				acc = report.Combine(acc, report.New(histogramScore(selfCount, otherCount)/2, 10, s, o))
				continue
			}
		}
		acc = report.Combine(acc, report.New(0, 10, s, o))
	}
	return acc
}

// histogramScore implements score(a,b) = 100 - 100*|a-b|/(a+b), with
// score(0,0) defined as 100 (never reached here since both counts are
// verified positive by the caller, kept for completeness).
func histogramScore(a, b int) int {
	if a == 0 && b == 0 {
		return 100
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return 100 - 100*diff/(a+b)
}
