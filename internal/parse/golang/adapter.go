// Package golang adapts the tree-sitter Go grammar into the entity model: Go
// structs become Classes (matched to their receiver methods by type name),
// package-level functions become File-level top-level functions, and every
// statement inside a function body becomes one StatementBlock.
package golang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsgolang "github.com/smacker/go-tree-sitter/golang"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/parse"
)

const languageTag = "go"

var callSpecs = map[string]string{"call_expression": "function"}

func init() {
	parse.Register(adapter{})
}

type adapter struct{}

func (adapter) Language() string      { return languageTag }
func (adapter) Extensions() []string  { return []string{".go"} }
func (adapter) Grammar() *sitter.Language { return tsgolang.GetLanguage() }

func (a adapter) BuildFile(proj *entity.Project, path, source string, root *sitter.Node) *entity.File {
	classesByName := make(map[string]*entity.Class)
	var classOrder []string
	var topFuncs []*entity.Method

	n := int(root.NamedChildCount())
	for i := 0; i < n; i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "type_declaration":
			for _, spec := range parse.DirectChildrenOfType(child, []string{"type_spec"}) {
				if cls := a.buildClass(proj, spec, source); cls != nil {
					if _, exists := classesByName[cls.ClassName]; !exists {
						classOrder = append(classOrder, cls.ClassName)
					}
					classesByName[cls.ClassName] = cls
				}
			}
		case "function_declaration":
			topFuncs = append(topFuncs, a.buildMethod(proj, child, source))
		case "method_declaration":
			recv := receiverTypeName(child, source)
			m := a.buildMethod(proj, child, source)
			cls, ok := classesByName[recv]
			if !ok {
				cls = entity.NewClass(recv, nil, nil, nil, proj)
				classesByName[recv] = cls
				classOrder = append(classOrder, recv)
			}
			cls.Methods = append(cls.Methods, m)
		}
	}

	classes := make([]*entity.Class, 0, len(classOrder))
	for _, name := range classOrder {
		classes = append(classes, classesByName[name])
	}

	return entity.NewFile(baseName(path), path, classes, topFuncs, nil, nil, proj)
}

func (a adapter) buildClass(proj *entity.Project, spec *sitter.Node, source string) *entity.Class {
	nameNode := spec.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := parse.NodeText(nameNode, source)
	underlying := spec.ChildByFieldName("type")

	classType := entity.NewType(name, proj.ProjectName, proj, "")
	proj.RegisterUserType(classType)

	var vars []*entity.Variable
	if underlying != nil && underlying.Type() == "struct_type" {
		vars = a.buildFields(proj, underlying, source)
	}

	return entity.NewClass(name, []*entity.Modifier{exportModifier(name)}, vars, nil, proj)
}

func (a adapter) buildFields(proj *entity.Project, structType *sitter.Node, source string) []*entity.Variable {
	var vars []*entity.Variable
	fieldList := firstNamedChildOfType(structType, "field_declaration_list")
	if fieldList == nil {
		return vars
	}
	n := int(fieldList.NamedChildCount())
	for i := 0; i < n; i++ {
		field := fieldList.NamedChild(i)
		if field == nil || field.Type() != "field_declaration" {
			continue
		}
		name := parse.FirstIdentifier(field, source)
		if name == "" {
			name = parse.NodeText(field, source)
		}
		typeNode := field.ChildByFieldName("type")
		typ := buildType(proj, typeNode, source)
		vars = append(vars, entity.NewVariable(name, []*entity.Modifier{exportModifier(name)}, typ))
	}
	return vars
}

func (a adapter) buildMethod(proj *entity.Project, node *sitter.Node, source string) *entity.Method {
	name := parse.NodeText(node.ChildByFieldName("name"), source)

	var params []*entity.Parameter
	if paramList := node.ChildByFieldName("parameters"); paramList != nil {
		params = buildParams(proj, paramList, source)
	}

	var ret *entity.Type
	if resultNode := node.ChildByFieldName("result"); resultNode != nil {
		ret = buildType(proj, resultNode, source)
	} else {
		ret = entity.NewType("", "", proj, "")
	}

	var blocks []*entity.StatementBlock
	if body := node.ChildByFieldName("body"); body != nil {
		blocks = buildStatementBlocks(proj, body, source)
	}

	return entity.NewMethod(name, params, ret, []*entity.Modifier{exportModifier(name)}, blocks, proj)
}

func buildParams(proj *entity.Project, paramList *sitter.Node, source string) []*entity.Parameter {
	var params []*entity.Parameter
	n := int(paramList.NamedChildCount())
	for i := 0; i < n; i++ {
		decl := paramList.NamedChild(i)
		if decl == nil || decl.Type() != "parameter_declaration" {
			continue
		}
		name := parse.FirstIdentifier(decl, source)
		typ := buildType(proj, decl.ChildByFieldName("type"), source)
		params = append(params, entity.NewParameter(name, typ))
	}
	return params
}

func buildStatementBlocks(proj *entity.Project, body *sitter.Node, source string) []*entity.StatementBlock {
	var blocks []*entity.StatementBlock
	n := int(body.NamedChildCount())
	for i := 0; i < n; i++ {
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
	return blocks
}

// buildType canonicalizes a type node's raw text through the shared
// normalization table, stripping pointer/slice decoration for the raw name
// (e.g. "*Foo" and "[]Foo" both key on "Foo" for the compatible-format
// lookup, matching how the normalization table is authored).
func buildType(proj *entity.Project, node *sitter.Node, source string) *entity.Type {
	if node == nil {
		return entity.NewType("", "", proj, "")
	}
	raw := parse.NodeText(node, source)
	bare := strings.TrimLeft(raw, "*[]")
	compatible := proj.Cfg.TypeNormalization[languageTag][bare]
	return entity.NewType(raw, "", proj, compatible)
}

func receiverTypeName(method *sitter.Node, source string) string {
	recv := method.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	n := int(recv.NamedChildCount())
	for i := 0; i < n; i++ {
		decl := recv.NamedChild(i)
		if decl == nil || decl.Type() != "parameter_declaration" {
			continue
		}
		typeNode := decl.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		return strings.TrimLeft(parse.NodeText(typeNode, source), "*")
	}
	return ""
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

func exportModifier(name string) *entity.Modifier {
	if len(name) > 0 && strings.ToUpper(name[:1]) == name[:1] {
		return entity.NewModifier("exported")
	}
	return entity.NewModifier("unexported")
}

func baseName(path string) string {
	idx := strings.LastIndexAny(path, "/\\")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
