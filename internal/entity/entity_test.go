package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/detectsim/internal/settings"
)

func newTestProject(t *testing.T) *Project {
	t.Helper()
	return NewProject("proj", "go", false, settings.Default())
}

func TestNotFound_CompareAlwaysZeroWithWeight(t *testing.T) {
	r := Missing.Compare(Missing, false)
	assert.Equal(t, 0, r.Probability)
	assert.Equal(t, 10, r.Weight)
	assert.Equal(t, KindNotFound, Missing.Kind())
	assert.False(t, Missing.Visualise())
}

func TestModifier_CompareMatchAndMismatch(t *testing.T) {
	pub := NewModifier("public")
	priv := NewModifier("private")
	samePub := NewModifier("public")

	match := pub.Compare(samePub, false)
	assert.Equal(t, 100, match.Probability)
	assert.Equal(t, 10, match.Weight)

	mismatch := pub.Compare(priv, false)
	assert.Equal(t, 0, mismatch.Probability)
	assert.Equal(t, 10, mismatch.Weight)

	assert.False(t, pub.Visualise())
	assert.Equal(t, KindModifier, pub.Kind())
}

func TestType_CompareBothEmptyNames(t *testing.T) {
	proj := newTestProject(t)
	a := NewType("", "", proj, "")
	b := NewType("", "", proj, "")

	r := a.Compare(b, false)
	assert.Equal(t, 100, r.Probability)
	assert.Equal(t, 1, r.Weight)
}

func TestType_CompareNonUserDefinedExactMatch(t *testing.T) {
	proj := newTestProject(t)
	a := NewType("string", "", proj, "String")
	b := NewType("string", "", proj, "String")

	r := a.Compare(b, false)
	assert.Equal(t, 100, r.Probability)
	assert.Equal(t, 10, r.Weight)
}

func TestType_CompareCompatibleFormatMatchesOtherName(t *testing.T) {
	proj := newTestProject(t)
	a := NewType("int", "", proj, "Double")
	b := NewType("Double", "", proj, "")

	r := a.Compare(b, false)
	assert.Equal(t, 75, r.Probability)
	assert.Equal(t, 10, r.Weight)
}

func TestType_CompareSharedCompatibleFormat(t *testing.T) {
	proj := newTestProject(t)
	a := NewType("int", "", proj, "Double")
	b := NewType("float64", "", proj, "Double")

	r := a.Compare(b, false)
	assert.Equal(t, 50, r.Probability)
	assert.Equal(t, 10, r.Weight)
}

func TestType_CompareUnrelatedNonUserDefined(t *testing.T) {
	proj := newTestProject(t)
	a := NewType("int", "", proj, "Double")
	b := NewType("string", "", proj, "String")

	r := a.Compare(b, false)
	assert.Equal(t, 0, r.Probability)
	assert.Equal(t, 10, r.Weight)
}

// TestType_CompareUserDefinedShapeBijection exercises Project.Resolve's
// second pass: a field-reference Type only becomes user-defined (and gains
// its flattened non-user-defined shape) once Resolve walks it as a variable
// or parameter type, looking up its owning Class by key.
func TestType_CompareUserDefinedShapeBijection(t *testing.T) {
	proj := newTestProject(t)
	widgetOwner := NewType("Widget", "", proj, "")
	gadgetOwner := NewType("Gadget", "", proj, "")
	proj.RegisterUserType(widgetOwner)
	proj.RegisterUserType(gadgetOwner)

	strType := NewType("string", "", proj, "String")
	intType := NewType("int", "", proj, "Double")
	widgetClass := NewClass("Widget", nil, []*Variable{NewVariable("name", nil, strType)}, nil, proj)
	gadgetClass := NewClass("Gadget", nil, []*Variable{NewVariable("count", nil, intType)}, nil, proj)

	widgetFieldType := NewType("Widget", "", proj, "")
	gadgetFieldType := NewType("Gadget", "", proj, "")
	holderVars := []*Variable{
		NewVariable("w", nil, widgetFieldType),
		NewVariable("g", nil, gadgetFieldType),
	}
	holder := NewClass("Holder", nil, holderVars, nil, proj)

	proj.Files = []*File{NewFile("f.go", "f.go", []*Class{widgetClass, gadgetClass, holder}, nil, nil, nil, proj)}
	proj.Resolve()

	require.True(t, widgetFieldType.IsUserDefined())
	require.True(t, gadgetFieldType.IsUserDefined())

	r := widgetFieldType.Compare(gadgetFieldType, false)
	assert.Equal(t, 0, r.Probability, "string-shaped Widget vs int-shaped Gadget should not match")
}

func TestVariable_CompareCombinesModifiersAndType(t *testing.T) {
	proj := newTestProject(t)
	strType := NewType("string", "", proj, "String")
	a := NewVariable("name", []*Modifier{NewModifier("public")}, strType)
	b := NewVariable("label", []*Modifier{NewModifier("public")}, strType)

	r := a.Compare(b, false)
	assert.Equal(t, 100, r.Probability)
}

func TestParameter_CompareDelegatesToType(t *testing.T) {
	proj := newTestProject(t)
	strType := NewType("string", "", proj, "String")
	intType := NewType("int", "", proj, "Double")

	same := NewParameter("a", strType).Compare(NewParameter("b", strType), false)
	assert.Equal(t, 100, same.Probability)

	diff := NewParameter("a", strType).Compare(NewParameter("b", intType), false)
	assert.Equal(t, 0, diff.Probability)
}
