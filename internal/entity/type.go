package entity

import (
	"fmt"

	"github.com/oxhq/detectsim/internal/match"
	"github.com/oxhq/detectsim/internal/report"
)

// Type is the data type of a variable, parameter, or method return value. It
// can be user-defined (declared somewhere in the same project), imported, or
// a language primitive/collection. is_user_defined and the non-user-defined
// constituent list are resolved once, in Project.Resolve, after every File has
// been parsed; they must not change afterward (§3 invariant 4).
type Type struct {
	TypeName         string
	Package          string
	Project          *Project
	CompatibleFormat string // canonical primitive/collection family, or ""

	userDefined    bool
	nonUserDefined []*Type
}

// NewType constructs a Type given its raw name, declaring package, and owning
// project. compatibleFormat is looked up from the project's language-specific
// normalization table by the caller (an internal/parse adapter), since the
// table is language-specific and Type itself carries no language tag.
func NewType(name, pkg string, proj *Project, compatibleFormat string) *Type {
	return &Type{TypeName: name, Package: pkg, Project: proj, CompatibleFormat: compatibleFormat}
}

func (t *Type) Name() string    { return t.TypeName }
func (t *Type) Visualise() bool { return false }
func (t *Type) Kind() string    { return KindType }

// IsUserDefined reports whether this type is declared somewhere in the
// project. Valid only after Project.Resolve has run.
func (t *Type) IsUserDefined() bool { return t.userDefined }

// NonUserDefinedTypes returns the type's flattened primitive "shape": the
// non-user-defined field types reachable from a user-defined type. Valid only
// after Project.Resolve has run.
func (t *Type) NonUserDefinedTypes() []*Type { return t.nonUserDefined }

// markUserDefined is called only by Project.Resolve's second pass.
func (t *Type) markUserDefined(nonUserDefined []*Type) {
	t.userDefined = true
	t.nonUserDefined = nonUserDefined
}

// key identifies a type by name alone for the project's user-type table:
// field, parameter and return types are built without a package, so the
// package takes no part in the lookup.
type typeKey struct {
	name string
}

func (t *Type) key() typeKey { return typeKey{name: t.TypeName} }

func (t *Type) Compare(other report.Entity, fastScan bool) report.Report {
	o, ok := other.(*Type)
	if !ok {
		panic(fmt.Sprintf("entity: cannot compare Type with %T", other))
	}

	if t.TypeName == "" && o.TypeName == "" {
		return report.New(100, 1, t, o)
	}
	if t.userDefined != o.userDefined {
		return report.New(0, 10, t, o)
	}
	if !t.userDefined {
		switch {
		case t.TypeName == o.TypeName:
			return report.New(100, 10, t, o)
		case t.CompatibleFormat != "" && t.CompatibleFormat == o.TypeName,
			o.CompatibleFormat != "" && o.CompatibleFormat == t.TypeName:
			return report.New(75, 10, t, o)
		case t.CompatibleFormat != "" && t.CompatibleFormat == o.CompatibleFormat:
			return report.New(50, 10, t, o)
		default:
			return report.New(0, 10, t, o)
		}
	}

	return match.Collection(t, o, t.nonUserDefined, o.nonUserDefined, fastScan, t.Project.Cfg, Missing,
		func(x, y *Type, fs bool) report.Report { return x.Compare(y, fs) })
}
