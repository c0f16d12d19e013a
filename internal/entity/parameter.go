package entity

import (
	"fmt"

	"github.com/oxhq/detectsim/internal/report"
)

// Parameter is a formal argument of a Method.
type Parameter struct {
	ParamName string
	Type      *Type
}

func NewParameter(name string, typ *Type) *Parameter {
	return &Parameter{ParamName: name, Type: typ}
}

func (p *Parameter) Name() string    { return p.ParamName }
func (p *Parameter) Visualise() bool { return false }
func (p *Parameter) Kind() string    { return KindParameter }

func (p *Parameter) Compare(other report.Entity, fastScan bool) report.Report {
	o, ok := other.(*Parameter)
	if !ok {
		panic(fmt.Sprintf("entity: cannot compare Parameter with %T", other))
	}
	return p.Type.Compare(o.Type, fastScan)
}
