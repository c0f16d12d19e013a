package entity

import "github.com/oxhq/detectsim/internal/report"

// NotFound is the sentinel representing "no counterpart found" for an element
// left unmatched by a bijective assignment. It always participates in a
// probability-0, weight-10 report; Compare is never actually invoked on it in
// normal operation (match.Collection constructs those reports directly), but
// it satisfies report.Entity so it can stand in for First or Second.
type NotFound struct{}

// Missing is the single shared NotFound instance.
var Missing = NotFound{}

func (NotFound) Name() string      { return "NOT FOUND" }
func (NotFound) Visualise() bool   { return false }
func (NotFound) Kind() string      { return KindNotFound }
func (n NotFound) Compare(other report.Entity, fastScan bool) report.Report {
	return report.New(0, 10, n, other)
}
