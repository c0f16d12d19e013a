// Package php adapts the tree-sitter PHP grammar into the entity model:
// classes, interfaces and traits all map to Class, property_declaration
// statements to member Variables, and both free functions and methods share
// a single parameter/arity extractor.
package php

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsphp "github.com/smacker/go-tree-sitter/php"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/parse"
)

const languageTag = "php"

var classKinds = []string{"class_declaration", "interface_declaration", "trait_declaration"}
var funcKinds = []string{"function_definition"}
var methodKinds = []string{"method_declaration"}

var callSpecs = map[string]string{
	"function_call_expression": "function",
	"member_call_expression":   "name",
	"scoped_call_expression":   "name",
}

func init() {
	parse.Register(adapter{})
}

type adapter struct{}

func (adapter) Language() string          { return languageTag }
func (adapter) Extensions() []string      { return []string{".php", ".phtml", ".php4", ".php5", ".phps"} }
func (adapter) Grammar() *sitter.Language { return tsphp.GetLanguage() }

func (a adapter) BuildFile(proj *entity.Project, path, source string, root *sitter.Node) *entity.File {
	var classes []*entity.Class
	var topFuncs []*entity.Method

	for _, node := range parse.DirectChildrenOfType(root, classKinds) {
		classes = append(classes, a.buildClass(proj, node, source))
	}
	for _, node := range parse.DirectChildrenOfType(root, funcKinds) {
		topFuncs = append(topFuncs, a.buildFunction(proj, node, source))
	}

	return entity.NewFile(baseName(path), path, classes, topFuncs, nil, nil, proj)
}

func (a adapter) buildClass(proj *entity.Project, node *sitter.Node, source string) *entity.Class {
	name := parse.NodeText(node.ChildByFieldName("name"), source)
	classType := entity.NewType(name, proj.ProjectName, proj, "")
	proj.RegisterUserType(classType)

	body := firstNamedChildOfType(node, "declaration_list")

	var vars []*entity.Variable
	var methods []*entity.Method
	if body != nil {
		for _, prop := range parse.DirectChildrenOfType(body, []string{"property_declaration"}) {
			vars = append(vars, a.buildPropertyVariables(proj, prop, source)...)
		}
		for _, method := range parse.DirectChildrenOfType(body, methodKinds) {
			methods = append(methods, a.buildFunction(proj, method, source))
		}
	}

	return entity.NewClass(name, modifierList(node, source), vars, methods, proj)
}

func (a adapter) buildPropertyVariables(proj *entity.Project, node *sitter.Node, source string) []*entity.Variable {
	var vars []*entity.Variable
	mods := modifierList(node, source)
	n := int(node.NamedChildCount())
	for i := 0; i < n; i++ {
		child := node.NamedChild(i)
		if child == nil || child.Type() != "property_element" {
			continue
		}
		name := parse.FirstIdentifier(child, source)
		if name == "" {
			name = parse.NodeText(child, source)
		}
		vars = append(vars, entity.NewVariable(name, mods, entity.NewType("", "", proj, "")))
	}
	return vars
}

func (a adapter) buildFunction(proj *entity.Project, node *sitter.Node, source string) *entity.Method {
	name := parse.NodeText(node.ChildByFieldName("name"), source)

	var params []*entity.Parameter
	positional, defaults := 0, 0
	hasVarArgs := false

	if paramList := node.ChildByFieldName("parameters"); paramList != nil {
		n := int(paramList.NamedChildCount())
		for i := 0; i < n; i++ {
			p := paramList.NamedChild(i)
			if p == nil {
				continue
			}
			switch p.Type() {
			case "variadic_parameter":
				hasVarArgs = true
			case "simple_parameter":
				pname := parse.FirstIdentifier(p, source)
				typ := buildType(proj, p.ChildByFieldName("type"), source)
				params = append(params, entity.NewParameter(pname, typ))
				if p.ChildByFieldName("default_value") != nil {
					defaults++
				} else {
					positional++
				}
			}
		}
	}

	var ret *entity.Type
	if retType := node.ChildByFieldName("return_type"); retType != nil {
		ret = buildType(proj, retType, source)
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

	m := entity.NewMethod(name, params, ret, modifierList(node, source), blocks, proj)
	m.PositionalArity = positional
	m.DefaultArity = defaults
	m.HasVarArgs = hasVarArgs
	return m
}

func modifierList(node *sitter.Node, source string) []*entity.Modifier {
	var mods []*entity.Modifier
	n := int(node.ChildCount())
	for i := 0; i < n; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "visibility_modifier", "static_modifier", "abstract_modifier", "final_modifier":
			mods = append(mods, entity.NewModifier(parse.NodeText(child, source)))
		}
	}
	return mods
}

func buildType(proj *entity.Project, node *sitter.Node, source string) *entity.Type {
	if node == nil {
		return entity.NewType("", "", proj, "")
	}
	raw := strings.TrimPrefix(parse.NodeText(node, source), "?")
	compatible := proj.Cfg.TypeNormalization[languageTag][raw]
	return entity.NewType(raw, "", proj, compatible)
}

func firstNamedChildOfType(node *sitter.Node, kind string) *sitter.Node {
	n := int(node.NamedChildCount())
	for i := 0; i < n; i++ {
		child := node.NamedChild(i)
		if child != nil && child.Type() == kind {
			return child
		}
	}
	return nil
}

func baseName(path string) string {
	idx := strings.LastIndexAny(path, "/\\")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
