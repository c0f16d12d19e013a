// Package ecmascript holds the tree-walking logic shared by the javascript
// and typescript adapters: their grammars diverge only in the extra node
// kinds TypeScript's type annotations introduce, so both adapters configure
// this single implementation instead of duplicating it.
package ecmascript

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/parse"
)

// Config parameterizes the shared builder over one ECMAScript-family
// grammar's specific node-kind vocabulary.
type Config struct {
	LanguageTag string
	ClassKinds  []string
	MethodKinds []string
	FieldKinds  []string
	FuncKinds   []string // function_declaration-like top-level kinds
}

// callSpecs is shared by both the javascript and typescript grammars: a call
// expression's callee sits in its "function" field whether it's a bare
// identifier or a member_expression ("obj.method()").
var callSpecs = map[string]string{"call_expression": "function"}

// BuildFile folds one parsed ECMAScript-family file into the entity model.
func BuildFile(cfg Config, proj *entity.Project, path, source string, root *sitter.Node) *entity.File {
	var classes []*entity.Class
	var topFuncs []*entity.Method
	var topStmts []*entity.StatementBlock

	for _, node := range parse.DirectChildrenOfType(root, cfg.ClassKinds) {
		classes = append(classes, buildClass(cfg, proj, node, source))
	}
	for _, node := range parse.DirectChildrenOfType(root, cfg.FuncKinds) {
		topFuncs = append(topFuncs, buildFunction(cfg, proj, node, source))
	}

	n := int(root.NamedChildCount())
	for i := 0; i < n; i++ {
		child := root.NamedChild(i)
		if child == nil || isDeclKind(child, cfg.ClassKinds) || isDeclKind(child, cfg.FuncKinds) {
			continue
		}
		topStmts = append(topStmts, &entity.StatementBlock{
			BlockName:    child.Type(),
			Language:     cfg.LanguageTag,
			Histogram:    parse.Histogram(child),
			Cfg:          proj.Cfg,
			InvokedNames: parse.CallNames(child, source, callSpecs),
		})
	}

	return entity.NewFile(baseName(path), path, classes, topFuncs, topStmts, nil, proj)
}

func buildClass(cfg Config, proj *entity.Project, node *sitter.Node, source string) *entity.Class {
	nameNode := node.ChildByFieldName("name")
	name := parse.NodeText(nameNode, source)
	if name == "" {
		name = "anonymous"
	}

	classType := entity.NewType(name, proj.ProjectName, proj, "")
	proj.RegisterUserType(classType)

	body := node.ChildByFieldName("body")
	var vars []*entity.Variable
	var methods []*entity.Method
	if body != nil {
		for _, field := range parse.DirectChildrenOfType(body, cfg.FieldKinds) {
			vars = append(vars, buildField(cfg, proj, field, source))
		}
		for _, method := range parse.DirectChildrenOfType(body, cfg.MethodKinds) {
			methods = append(methods, buildFunction(cfg, proj, method, source))
		}
	}

	return entity.NewClass(name, accessibilityModifiers(node, source), vars, methods, proj)
}

func buildField(cfg Config, proj *entity.Project, node *sitter.Node, source string) *entity.Variable {
	nameNode := node.ChildByFieldName("property")
	if nameNode == nil {
		nameNode = node.ChildByFieldName("name")
	}
	name := parse.NodeText(nameNode, source)
	typ := buildType(cfg, proj, node.ChildByFieldName("type"), source)
	return entity.NewVariable(name, accessibilityModifiers(node, source), typ)
}

func buildFunction(cfg Config, proj *entity.Project, node *sitter.Node, source string) *entity.Method {
	nameNode := node.ChildByFieldName("name")
	name := parse.NodeText(nameNode, source)
	if name == "" {
		name = "anonymous"
	}

	var params []*entity.Parameter
	positional, defaults := 0, 0
	hasVarArgs := false

	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		pn := int(paramsNode.NamedChildCount())
		for i := 0; i < pn; i++ {
			p := paramsNode.NamedChild(i)
			if p == nil {
				continue
			}
			switch p.Type() {
			case "rest_pattern":
				hasVarArgs = true
			case "assignment_pattern":
				pname := parse.FirstIdentifier(p, source)
				params = append(params, entity.NewParameter(pname, entity.NewType("", "", proj, "")))
				defaults++
			default:
				pname := parse.FirstIdentifier(p, source)
				if pname == "" {
					pname = parse.NodeText(p, source)
				}
				typ := buildType(cfg, proj, p.ChildByFieldName("type"), source)
				params = append(params, entity.NewParameter(pname, typ))
				positional++
			}
		}
	}

	ret := buildType(cfg, proj, node.ChildByFieldName("return_type"), source)

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
				Language:     cfg.LanguageTag,
				Histogram:    parse.Histogram(stmt),
				Cfg:          proj.Cfg,
				InvokedNames: parse.CallNames(stmt, source, callSpecs),
			})
		}
	}

	m := entity.NewMethod(name, params, ret, accessibilityModifiers(node, source), blocks, proj)
	m.PositionalArity = positional
	m.DefaultArity = defaults
	m.HasVarArgs = hasVarArgs
	return m
}

// accessibilityModifiers reads a TypeScript "accessibility_modifier" child
// (public/private/protected) or a "static"/"async"/"readonly" keyword child
// present as a direct named or anonymous child, JavaScript's and
// TypeScript's nearest equivalent to Java's modifier list.
func accessibilityModifiers(node *sitter.Node, source string) []*entity.Modifier {
	var mods []*entity.Modifier
	n := int(node.ChildCount())
	for i := 0; i < n; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "accessibility_modifier":
			mods = append(mods, entity.NewModifier(parse.NodeText(child, source)))
		case "static", "async", "readonly", "abstract", "get", "set":
			mods = append(mods, entity.NewModifier(child.Type()))
		}
	}
	return mods
}

func buildType(cfg Config, proj *entity.Project, typeAnnotation *sitter.Node, source string) *entity.Type {
	if typeAnnotation == nil {
		return entity.NewType("", "", proj, "")
	}
	raw := strings.TrimPrefix(parse.NodeText(typeAnnotation, source), ":")
	raw = strings.TrimSpace(raw)
	compatible := proj.Cfg.TypeNormalization[cfg.LanguageTag][raw]
	return entity.NewType(raw, "", proj, compatible)
}

func isDeclKind(node *sitter.Node, kinds []string) bool {
	if node == nil {
		return false
	}
	if containsKind(kinds, node.Type()) {
		return true
	}
	switch node.Type() {
	case "export_statement", "export_default_declaration":
		n := int(node.NamedChildCount())
		for i := 0; i < n; i++ {
			child := node.NamedChild(i)
			if child != nil && containsKind(kinds, child.Type()) {
				return true
			}
		}
	}
	return false
}

func containsKind(kinds []string, kind string) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func baseName(path string) string {
	idx := strings.LastIndexAny(path, "/\\")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
