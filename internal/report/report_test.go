package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEntity struct {
	name      string
	visualise bool
	kind      string
}

func (s stubEntity) Name() string    { return s.name }
func (s stubEntity) Visualise() bool { return s.visualise }
func (s stubEntity) Kind() string    { return s.kind }

func method(name string) stubEntity { return stubEntity{name: name, visualise: true, kind: "Method"} }
func param(name string) stubEntity  { return stubEntity{name: name, visualise: false, kind: "Parameter"} }

func TestNew(t *testing.T) {
	r := New(80, 10, method("a"), method("b"))
	assert.Equal(t, 80, r.Probability)
	assert.Equal(t, 10, r.Weight)
	assert.Empty(t, r.Children)
}

func TestLess(t *testing.T) {
	low := New(10, 5, method("a"), method("b"))
	high := New(90, 5, method("a"), method("b"))
	sameProbLowWeight := New(50, 1, method("a"), method("b"))
	sameProbHighWeight := New(50, 9, method("a"), method("b"))

	assert.True(t, Less(low, high))
	assert.False(t, Less(high, low))
	assert.True(t, Less(sameProbLowWeight, sameProbHighWeight))
}

func TestCombine_SameLevel_ConcatenatesChildren(t *testing.T) {
	m := method("m")
	a := New(100, 10, m, m)
	a.Children = []Report{New(100, 10, param("p1"), param("p1"))}
	b := New(0, 10, m, m)
	b.Children = []Report{New(0, 10, param("p2"), param("p2"))}

	merged := Combine(a, b)

	assert.Equal(t, 50, merged.Probability)
	assert.Equal(t, 20, merged.Weight)
	require.Len(t, merged.Children, 2)
}

func TestCombine_DifferentLevel_DropsNonVisualisableChild(t *testing.T) {
	m := method("m")
	p := param("p")

	a := New(100, 10, m, m)
	b := New(40, 10, p, p) // Parameter isn't visualisable

	merged := Combine(a, b)

	assert.Equal(t, 70, merged.Probability)
	assert.Empty(t, merged.Children, "non-visualisable child should not be nested")
}

func TestCombine_DifferentLevel_NestsVisualisableEntity(t *testing.T) {
	m := method("m")
	otherMethod := stubEntity{name: "n", visualise: true, kind: "Method"}
	class := stubEntity{name: "c", visualise: true, kind: "Class"}

	a := New(100, 10, m, otherMethod)
	b := New(0, 10, class, class)

	merged := Combine(a, b)

	require.Len(t, merged.Children, 1)
	assert.Equal(t, class, merged.Children[0].First)
}

func TestCombine_ZeroWeightDenominator(t *testing.T) {
	m := method("m")
	a := New(0, 0, m, m)
	b := New(0, 0, m, m)

	merged := Combine(a, b)

	assert.Equal(t, 0, merged.Probability)
	assert.Equal(t, 0, merged.Weight)
}
