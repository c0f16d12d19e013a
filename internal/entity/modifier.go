package entity

import (
	"fmt"

	"github.com/oxhq/detectsim/internal/report"
)

// Modifier is a tag attached to classes, methods, or variables ("public",
// "static", "exported", ...). It is never visualised on its own in the detail
// sheet; it only contributes to its owner's aggregate score.
type Modifier struct {
	Tag string
}

func NewModifier(tag string) *Modifier { return &Modifier{Tag: tag} }

func (m *Modifier) Name() string    { return m.Tag }
func (m *Modifier) Visualise() bool { return false }
func (m *Modifier) Kind() string    { return KindModifier }

func (m *Modifier) Compare(other report.Entity, fastScan bool) report.Report {
	o, ok := other.(*Modifier)
	if !ok {
		panic(fmt.Sprintf("entity: cannot compare Modifier with %T", other))
	}
	if m.Tag == o.Tag {
		return report.New(100, 10, m, o)
	}
	return report.New(0, 10, m, o)
}
