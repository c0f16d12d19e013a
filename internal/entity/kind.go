// Package entity implements the concrete, language-agnostic entity model
// mirroring the salient structural features of a parsed source project:
// Project, File, Class, Method, Parameter, Variable, Type, Modifier, and
// StatementBlock, plus the NotFound sentinel. Every concrete type implements
// report.Entity and a Compare method; the variant list is closed by design
// (no further concrete types are expected), matched on by the Kind tag rather
// than reflection or inheritance.
package entity

// Kind tags for the closed set of concrete entity variants.
const (
	KindNotFound       = "NotFound"
	KindModifier       = "Modifier"
	KindType           = "Type"
	KindParameter      = "Parameter"
	KindVariable       = "Variable"
	KindStatementBlock = "StatementBlock"
	KindMethod         = "Method"
	KindClass          = "Class"
	KindFile           = "File"
	KindProject        = "Project"
)
