// Package javascript registers the JavaScript tree-sitter grammar with the
// shared ecmascript builder.
package javascript

import (
	sitter "github.com/smacker/go-tree-sitter"
	tsjavascript "github.com/smacker/go-tree-sitter/javascript"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/parse"
	"github.com/oxhq/detectsim/internal/parse/ecmascript"
)

const languageTag = "javascript"

var cfg = ecmascript.Config{
	LanguageTag: languageTag,
	ClassKinds:  []string{"class_declaration", "class_expression"},
	MethodKinds: []string{"method_definition"},
	FieldKinds:  []string{"field_definition"},
	FuncKinds:   []string{"function_declaration", "function_expression", "arrow_function"},
}

func init() {
	parse.Register(adapter{})
}

type adapter struct{}

func (adapter) Language() string          { return languageTag }
func (adapter) Extensions() []string      { return []string{".js", ".jsx", ".mjs", ".cjs"} }
func (adapter) Grammar() *sitter.Language { return tsjavascript.GetLanguage() }

func (adapter) BuildFile(proj *entity.Project, path, source string, root *sitter.Node) *entity.File {
	return ecmascript.BuildFile(cfg, proj, path, source, root)
}
