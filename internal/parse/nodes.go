package parse

import sitter "github.com/smacker/go-tree-sitter"

// NodeText returns the verbatim source text spanned by node.
func NodeText(node *sitter.Node, source string) string {
	if node == nil {
		return ""
	}
	return source[node.StartByte():node.EndByte()]
}

// DirectChildrenOfType returns node's named children whose type is in kinds,
// transparently looking one level inside common wrapper nodes (export
// statements, decorated definitions) that every dynamic-language grammar
// uses to attach modifiers without changing the wrapped declaration's type.
func DirectChildrenOfType(node *sitter.Node, kinds []string) []*sitter.Node {
	var out []*sitter.Node
	if node == nil {
		return out
	}
	n := int(node.NamedChildCount())
	for i := 0; i < n; i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		if containsKind(kinds, child.Type()) {
			out = append(out, child)
			continue
		}
		if isWrapperNode(child.Type()) {
			inner := int(child.NamedChildCount())
			for j := 0; j < inner; j++ {
				grandchild := child.NamedChild(j)
				if grandchild != nil && containsKind(kinds, grandchild.Type()) {
					out = append(out, grandchild)
				}
			}
		}
	}
	return out
}

func isWrapperNode(kind string) bool {
	switch kind {
	case "export_statement", "export_default_declaration", "decorated_definition":
		return true
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

// FirstIdentifier returns the text of the first direct named child whose type
// is "identifier", "property_identifier", "type_identifier" or "name" — the
// fallback name extractor for grammars/node kinds with no "name" field.
// Deeper descendants are not searched.
func FirstIdentifier(node *sitter.Node, source string) string {
	if node == nil {
		return ""
	}
	n := int(node.NamedChildCount())
	for i := 0; i < n; i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier", "property_identifier", "type_identifier", "name":
			return NodeText(child, source)
		}
	}
	return ""
}

// HasSyntaxError reports whether the subtree rooted at node contains a
// tree-sitter ERROR or missing node.
func HasSyntaxError(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	if node.Type() == "ERROR" || node.IsMissing() {
		return true
	}
	n := int(node.ChildCount())
	for i := 0; i < n; i++ {
		if HasSyntaxError(node.Child(i)) {
			return true
		}
	}
	return false
}

// CallNames walks the subtree rooted at node and returns the bare callee name
// of every call expression whose type is a key in specs, the value being the
// field on that node holding the callee. A callee that is a bare identifier
// is returned as-is; a compound access expression (Go's selector_expression,
// JS/TS's member_expression, Python's attribute, PHP's member/scoped call)
// unwraps down to its rightmost identifier, so "obj.Method()" and "Method()"
// both yield "Method" — intentionally coarse, name-only resolution, the same
// granularity resolveType already applies to field types.
func CallNames(node *sitter.Node, source string, specs map[string]string) []string {
	var names []string
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if field, ok := specs[n.Type()]; ok {
			if callee := n.ChildByFieldName(field); callee != nil {
				if name := calleeName(callee, source); name != "" {
					names = append(names, name)
				}
			}
		}
		count := int(n.NamedChildCount())
		for i := 0; i < count; i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(node)
	return names
}

// calleeName unwraps a call's function-field node down to its rightmost
// identifier.
func calleeName(node *sitter.Node, source string) string {
	switch node.Type() {
	case "identifier", "property_identifier", "type_identifier", "field_identifier", "name", "variable_name":
		return NodeText(node, source)
	}
	for _, field := range []string{"field", "property", "attribute", "name"} {
		if part := node.ChildByFieldName(field); part != nil {
			return calleeName(part, source)
		}
	}
	return FirstIdentifier(node, source)
}

// Histogram counts every node kind occurring in the subtree rooted at node,
// the "universe of node kinds" the statement-block comparator walks (§4.3).
func Histogram(node *sitter.Node) map[string]int {
	hist := make(map[string]int)
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		hist[n.Type()]++
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			walk(n.Child(i))
		}
	}
	walk(node)
	return hist
}
