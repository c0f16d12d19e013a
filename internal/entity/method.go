package entity

import (
	"fmt"

	"github.com/oxhq/detectsim/internal/match"
	"github.com/oxhq/detectsim/internal/report"
)

// Method is a class member function, or a function declared outside any
// class (Go package-level functions and dynamic-language free functions,
// attached to File instead). Its body is only compared once the
// signature-level probability exceeds
// Cfg.MethodInterfaceThreshold, the interface-before-body gate described in
// §4.4.
type Method struct {
	MethodName string
	Parameters []*Parameter
	ReturnType *Type
	Modifiers  []*Modifier
	Blocks     []*StatementBlock
	Project    *Project

	// AllBlocks is Blocks plus the bodies of every Method this Method invokes,
	// transitively, excluding direct self-recursion (§3 invariant: computed
	// once by Project.Resolve, never mutated afterward). It is what the body
	// comparison actually walks, mirroring definitions.py's notion that a
	// thin wrapper "inherits" the similarity of what it calls.
	AllBlocks []*StatementBlock

	// Arity-based fields populated only for dynamic-language adapters
	// (Python/JavaScript/TypeScript/PHP), mirroring py_scan.py's
	// PythonFunction: positional/keyword/default/varargs counts stand in for
	// a formal parameter list when the language has no static signature.
	PositionalArity int
	DefaultArity    int
	HasVarArgs      bool
	HasKwArgs       bool
}

func NewMethod(name string, params []*Parameter, ret *Type, mods []*Modifier, blocks []*StatementBlock, proj *Project) *Method {
	return &Method{
		MethodName: name,
		Parameters: params,
		ReturnType: ret,
		Modifiers:  mods,
		Blocks:     blocks,
		Project:    proj,
		AllBlocks:  blocks,
	}
}

func (m *Method) Name() string    { return m.MethodName }
func (m *Method) Visualise() bool { return true }
func (m *Method) Kind() string    { return KindMethod }

func (m *Method) Compare(other report.Entity, fastScan bool) report.Report {
	o, ok := other.(*Method)
	if !ok {
		panic(fmt.Sprintf("entity: cannot compare Method with %T", other))
	}
	cfg := m.Project.Cfg

	iface := m.compareInterface(o, fastScan)
	if iface.Weight == 0 {
		return iface
	}
	if iface.Probability <= cfg.MethodInterfaceThreshold {
		return iface
	}

	body := match.Collection(m, o, m.AllBlocks, o.AllBlocks, fastScan, cfg, Missing,
		func(x, y *StatementBlock, fs bool) report.Report { return x.Compare(y, fs) })
	return report.Combine(iface, body)
}

// compareInterface scores everything about a Method short of its body: its
// modifiers, parameters, return type and — for dynamic-language adapters
// that populate arity fields — the calling-convention shape on top (§4.5).
func (m *Method) compareInterface(o *Method, fastScan bool) report.Report {
	modReport := match.Collection(m, o, m.Modifiers, o.Modifiers, fastScan, m.Project.Cfg, Missing,
		func(x, y *Modifier, fs bool) report.Report { return x.Compare(y, fs) })

	sigReport := report.New(0, 0, m, o)
	if len(m.Parameters) > 0 || len(o.Parameters) > 0 {
		sigReport = match.Collection(m, o, m.Parameters, o.Parameters, fastScan, m.Project.Cfg, Missing,
			func(x, y *Parameter, fs bool) report.Report { return x.Compare(y, fs) })
	}
	if m.hasArityInfo() || o.hasArityInfo() {
		sigReport = report.Combine(sigReport, m.compareArity(o))
	}

	retReport := report.New(0, 0, m, o)
	if m.ReturnType != nil && o.ReturnType != nil {
		retReport = m.ReturnType.Compare(o.ReturnType, fastScan)
	}

	return report.Combine(report.Combine(modReport, sigReport), retReport)
}

func (m *Method) hasArityInfo() bool {
	return m.PositionalArity > 0 || m.DefaultArity > 0 || m.HasVarArgs || m.HasKwArgs
}

// compareArity scores dynamic-language functions by their calling convention
// shape, mirroring PythonFunction.compare: equal positional and default
// counts each contribute full credit at weight 5, and a varargs/kwargs
// mismatch is penalized the same way, each as its own weight-5 contribution.
func (m *Method) compareArity(o *Method) report.Report {
	acc := report.New(0, 0, m, o)
	acc = report.Combine(acc, report.New(arityScore(m.PositionalArity, o.PositionalArity), 5, m, o))
	acc = report.Combine(acc, report.New(arityScore(m.DefaultArity, o.DefaultArity), 5, m, o))
	acc = report.Combine(acc, report.New(boolScore(m.HasVarArgs, o.HasVarArgs), 5, m, o))
	acc = report.Combine(acc, report.New(boolScore(m.HasKwArgs, o.HasKwArgs), 5, m, o))
	return acc
}

func boolScore(a, b bool) int {
	if a == b {
		return 100
	}
	return 0
}

func arityScore(a, b int) int {
	if a == 0 && b == 0 {
		return 100
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	denom := a + b
	if denom == 0 {
		return 100
	}
	return 100 - 100*diff/denom
}
