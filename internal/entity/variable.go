package entity

import (
	"fmt"

	"github.com/oxhq/detectsim/internal/match"
	"github.com/oxhq/detectsim/internal/report"
)

// Variable holds a reference to a local or member variable declaration.
type Variable struct {
	VarName   string
	Modifiers []*Modifier
	Type      *Type
}

func NewVariable(name string, modifiers []*Modifier, typ *Type) *Variable {
	return &Variable{VarName: name, Modifiers: modifiers, Type: typ}
}

func (v *Variable) Name() string    { return v.VarName }
func (v *Variable) Visualise() bool { return false }
func (v *Variable) Kind() string    { return KindVariable }

func (v *Variable) Compare(other report.Entity, fastScan bool) report.Report {
	o, ok := other.(*Variable)
	if !ok {
		panic(fmt.Sprintf("entity: cannot compare Variable with %T", other))
	}
	cfg := v.Type.Project.Cfg
	report1 := match.Collection(v, o, v.Modifiers, o.Modifiers, fastScan, cfg, Missing,
		func(x, y *Modifier, fs bool) report.Report { return x.Compare(y, fs) })
	report2 := v.Type.Compare(o.Type, fastScan)
	return report.Combine(report1, report2)
}
