// Package python adapts the tree-sitter Python grammar into the entity
// model: classes map directly, module-level defs and statements populate
// File's top-level collections, and a function's calling convention (arity,
// defaults, *args/**kwargs) is captured alongside its parameter list since
// Python has no static signature to lean on alone (§4.5).
package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tspython "github.com/smacker/go-tree-sitter/python"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/parse"
)

const languageTag = "python"

var functionKinds = []string{"function_definition", "async_function_definition"}
var classKinds = []string{"class_definition"}
var callSpecs = map[string]string{"call": "function"}

func init() {
	parse.Register(adapter{})
}

type adapter struct{}

func (adapter) Language() string          { return languageTag }
func (adapter) Extensions() []string      { return []string{".py", ".pyw", ".pyi"} }
func (adapter) Grammar() *sitter.Language { return tspython.GetLanguage() }

func (a adapter) BuildFile(proj *entity.Project, path, source string, root *sitter.Node) *entity.File {
	var classes []*entity.Class
	var topFuncs []*entity.Method
	var topStmts []*entity.StatementBlock

	for _, node := range parse.DirectChildrenOfType(root, classKinds) {
		classes = append(classes, a.buildClass(proj, node, source))
	}
	for _, node := range parse.DirectChildrenOfType(root, functionKinds) {
		topFuncs = append(topFuncs, a.buildFunction(proj, node, source))
	}

	n := int(root.NamedChildCount())
	for i := 0; i < n; i++ {
		child := root.NamedChild(i)
		if isDefinitionWrapper(child, classKinds) || isDefinitionWrapper(child, functionKinds) {
			continue
		}
		topStmts = append(topStmts, &entity.StatementBlock{
			BlockName:    child.Type(),
			Language:     languageTag,
			Histogram:    parse.Histogram(child),
			Cfg:          proj.Cfg,
			InvokedNames: parse.CallNames(child, source, callSpecs),
		})
	}

	return entity.NewFile(baseName(path), path, classes, topFuncs, topStmts, nil, proj)
}

func (a adapter) buildClass(proj *entity.Project, node *sitter.Node, source string) *entity.Class {
	name := parse.NodeText(node.ChildByFieldName("name"), source)
	classType := entity.NewType(name, proj.ProjectName, proj, "")
	proj.RegisterUserType(classType)

	body := node.ChildByFieldName("body")

	var vars []*entity.Variable
	var methods []*entity.Method
	if body != nil {
		for _, assign := range classAttributeAssignments(body) {
			vars = append(vars, buildAssignmentVariable(proj, assign, source))
		}
		for _, fn := range parse.DirectChildrenOfType(body, functionKinds) {
			methods = append(methods, a.buildFunction(proj, fn, source))
		}
	}

	return entity.NewClass(name, decoratorModifiers(node, source), vars, methods, proj)
}

func (a adapter) buildFunction(proj *entity.Project, node *sitter.Node, source string) *entity.Method {
	name := parse.NodeText(node.ChildByFieldName("name"), source)

	var params []*entity.Parameter
	positional, defaults := 0, 0
	hasVarArgs, hasKwArgs := false, false

	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		pn := int(paramsNode.NamedChildCount())
		for i := 0; i < pn; i++ {
			p := paramsNode.NamedChild(i)
			if p == nil {
				continue
			}
			switch p.Type() {
			case "identifier":
				params = append(params, entity.NewParameter(parse.NodeText(p, source), entity.NewType("", "", proj, "")))
				positional++
			case "typed_parameter":
				pname := parse.FirstIdentifier(p, source)
				typ := buildType(proj, p.ChildByFieldName("type"), source)
				params = append(params, entity.NewParameter(pname, typ))
				positional++
			case "default_parameter", "typed_default_parameter":
				pname := parse.FirstIdentifier(p, source)
				typ := buildType(proj, p.ChildByFieldName("type"), source)
				params = append(params, entity.NewParameter(pname, typ))
				defaults++
			case "list_splat_pattern":
				hasVarArgs = true
			case "dictionary_splat_pattern":
				hasKwArgs = true
			}
		}
	}

	var ret *entity.Type
	if retNode := node.ChildByFieldName("return_type"); retNode != nil {
		ret = buildType(proj, retNode, source)
	} else {
		ret = entity.NewType("", "", proj, "")
	}

	var blocks []*entity.StatementBlock
	if body := node.ChildByFieldName("body"); body != nil {
		bn := int(body.NamedChildCount())
		for i := 0; i < bn; i++ {
			stmt := body.NamedChild(i)
			if stmt == nil {
				continue
			}
			blocks = append(blocks, &entity.StatementBlock{
				BlockName:    stmt.Type(),
				Language:     languageTag,
				Histogram:    parse.Histogram(stmt),
				Cfg:          proj.Cfg,
				InvokedNames: parse.CallNames(stmt, source, callSpecs),
			})
		}
	}

	m := entity.NewMethod(name, params, ret, decoratorModifiers(node, source), blocks, proj)
	m.PositionalArity = positional
	m.DefaultArity = defaults
	m.HasVarArgs = hasVarArgs
	m.HasKwArgs = hasKwArgs
	return m
}

// classAttributeAssignments returns top-level assignment statements directly
// inside a class body, Python's equivalent of a field declaration.
func classAttributeAssignments(body *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	n := int(body.NamedChildCount())
	for i := 0; i < n; i++ {
		child := body.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "expression_statement":
			inner := int(child.NamedChildCount())
			for j := 0; j < inner; j++ {
				grand := child.NamedChild(j)
				if grand != nil && (grand.Type() == "assignment" || grand.Type() == "augmented_assignment") {
					out = append(out, grand)
				}
			}
		}
	}
	return out
}

func buildAssignmentVariable(proj *entity.Project, assign *sitter.Node, source string) *entity.Variable {
	name := parse.NodeText(assign.ChildByFieldName("left"), source)
	var typ *entity.Type
	if typeNode := assign.ChildByFieldName("type"); typeNode != nil {
		typ = buildType(proj, typeNode, source)
	} else {
		typ = entity.NewType("", "", proj, "")
	}
	return entity.NewVariable(name, nil, typ)
}

// decoratorModifiers turns a function/class's leading decorators into
// Modifiers (e.g. "@staticmethod", "@property"), Python's nearest equivalent
// to Java's visibility keywords.
func decoratorModifiers(node *sitter.Node, source string) []*entity.Modifier {
	parent := node.Parent()
	if parent == nil || parent.Type() != "decorated_definition" {
		return nil
	}
	var mods []*entity.Modifier
	n := int(parent.NamedChildCount())
	for i := 0; i < n; i++ {
		child := parent.NamedChild(i)
		if child != nil && child.Type() == "decorator" {
			mods = append(mods, entity.NewModifier(strings.TrimSpace(parse.NodeText(child, source))))
		}
	}
	return mods
}

func isDefinitionWrapper(node *sitter.Node, kinds []string) bool {
	if node == nil {
		return false
	}
	if contains(kinds, node.Type()) {
		return true
	}
	if node.Type() == "decorated_definition" {
		def := node.ChildByFieldName("definition")
		return def != nil && contains(kinds, def.Type())
	}
	return false
}

func contains(kinds []string, kind string) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func buildType(proj *entity.Project, node *sitter.Node, source string) *entity.Type {
	if node == nil {
		return entity.NewType("", "", proj, "")
	}
	raw := parse.NodeText(node, source)
	compatible := proj.Cfg.TypeNormalization[languageTag][raw]
	return entity.NewType(raw, "", proj, compatible)
}

func baseName(path string) string {
	idx := strings.LastIndexAny(path, "/\\")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
