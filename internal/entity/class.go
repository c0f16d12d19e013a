package entity

import (
	"fmt"

	"github.com/oxhq/detectsim/internal/match"
	"github.com/oxhq/detectsim/internal/report"
)

// Class is a statically-typed language's class/struct-with-methods
// declaration: a bag of modifiers, member variables, and methods, each
// compared bijectively against its counterpart.
type Class struct {
	ClassName string
	Modifiers []*Modifier
	Variables []*Variable
	Methods   []*Method
	Project   *Project

	// AllStatements is every Method's AllBlocks flattened across the class:
	// own statements plus those reachable via intra-project invocations
	// (§3). Computed once by Project.Resolve, never mutated afterward.
	AllStatements []*StatementBlock
}

func NewClass(name string, mods []*Modifier, vars []*Variable, methods []*Method, proj *Project) *Class {
	return &Class{ClassName: name, Modifiers: mods, Variables: vars, Methods: methods, Project: proj}
}

func (c *Class) Name() string    { return c.ClassName }
func (c *Class) Visualise() bool { return true }
func (c *Class) Kind() string    { return KindClass }

func (c *Class) Compare(other report.Entity, fastScan bool) report.Report {
	o, ok := other.(*Class)
	if !ok {
		panic(fmt.Sprintf("entity: cannot compare Class with %T", other))
	}
	cfg := c.Project.Cfg

	modReport := match.Collection(c, o, c.Modifiers, o.Modifiers, fastScan, cfg, Missing,
		func(x, y *Modifier, fs bool) report.Report { return x.Compare(y, fs) })
	varReport := match.Collection(c, o, c.Variables, o.Variables, fastScan, cfg, Missing,
		func(x, y *Variable, fs bool) report.Report { return x.Compare(y, fs) })
	methodReport := match.Collection(c, o, c.Methods, o.Methods, fastScan, cfg, Missing,
		func(x, y *Method, fs bool) report.Report { return x.Compare(y, fs) })

	return report.Combine(report.Combine(modReport, varReport), methodReport)
}
