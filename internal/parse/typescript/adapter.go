// Package typescript registers the TypeScript tree-sitter grammar with the
// shared ecmascript builder, adding the class-kind/method-kind/field-kind
// vocabulary TypeScript's grammar introduces on top of JavaScript's.
package typescript

import (
	sitter "github.com/smacker/go-tree-sitter"
	tstypescript "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/parse"
	"github.com/oxhq/detectsim/internal/parse/ecmascript"
)

const languageTag = "typescript"

var cfg = ecmascript.Config{
	LanguageTag: languageTag,
	ClassKinds:  []string{"class_declaration", "class_expression", "interface_declaration"},
	MethodKinds: []string{"method_definition", "method_signature"},
	FieldKinds:  []string{"public_field_definition", "private_field_definition", "property_signature"},
	FuncKinds:   []string{"function_declaration", "function_expression", "arrow_function"},
}

func init() {
	parse.Register(adapter{})
}

type adapter struct{}

func (adapter) Language() string          { return languageTag }
func (adapter) Extensions() []string      { return []string{".ts", ".tsx"} }
func (adapter) Grammar() *sitter.Language { return tstypescript.GetLanguage() }

func (adapter) BuildFile(proj *entity.Project, path, source string, root *sitter.Node) *entity.File {
	return ecmascript.BuildFile(cfg, proj, path, source, root)
}
