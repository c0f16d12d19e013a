package entity

import (
	"fmt"

	"github.com/oxhq/detectsim/internal/match"
	"github.com/oxhq/detectsim/internal/report"
	"github.com/oxhq/detectsim/internal/settings"
)

// Project is the root of one parsed submission (or template) directory. It is
// built once by a parse adapter, then finalized by Resolve before it ever
// takes part in a comparison; nothing after Resolve mutates it (§3 lifecycle).
type Project struct {
	ProjectName string
	LanguageTag string
	IsTemplate  bool
	Files       []*File
	Cfg         *settings.Config

	userTypes map[typeKey]*Type
	resolved  bool
}

// NewProject constructs an empty Project ready to be populated by a parse
// adapter and then finalized with Resolve.
func NewProject(name, languageTag string, isTemplate bool, cfg *settings.Config) *Project {
	return &Project{
		ProjectName: name,
		LanguageTag: languageTag,
		IsTemplate:  isTemplate,
		Cfg:         cfg,
		userTypes:   make(map[typeKey]*Type),
	}
}

func (p *Project) Name() string    { return p.ProjectName }
func (p *Project) Visualise() bool { return true }
func (p *Project) Kind() string    { return KindProject }

// RegisterUserType records a Type as user-defined-by-declaration (called by a
// parse adapter for every Class/interface it parses, before Resolve runs).
func (p *Project) RegisterUserType(t *Type) {
	p.userTypes[t.key()] = t
}

// AllClasses returns every Class across every File, used by Resolve to expand
// a user-defined type into its field types' non-user-defined shape.
func (p *Project) AllClasses() []*Class {
	classes := make([]*Class, 0)
	for _, f := range p.Files {
		classes = append(classes, f.Classes...)
	}
	return classes
}

// AllMethods returns every Method across every Class plus every dynamic
// language top-level Function, used to resolve call-graph "all blocks".
func (p *Project) AllMethods() []*Method {
	methods := make([]*Method, 0)
	for _, f := range p.Files {
		for _, c := range f.Classes {
			methods = append(methods, c.Methods...)
		}
		methods = append(methods, f.TopLevelFunctions...)
	}
	return methods
}

// Resolve finalizes derived state after every File has been parsed and
// attached: it marks which Types are user-defined and computes their
// non-user-defined constituent shape, then expands every Method's AllBlocks
// across the intra-project call graph. It must run exactly once, before the
// Project takes part in any comparison (§3 invariant 4).
func (p *Project) Resolve() {
	if p.resolved {
		return
	}
	p.resolved = true

	seen := make(map[typeKey]bool, len(p.userTypes))
	for _, c := range p.AllClasses() {
		for _, v := range c.Variables {
			p.resolveType(v.Type, seen)
		}
		for _, m := range c.Methods {
			p.resolveMethodSignature(m, seen)
		}
	}
	for _, f := range p.Files {
		for _, m := range f.TopLevelFunctions {
			p.resolveMethodSignature(m, seen)
		}
	}

	p.resolveCallGraph()

	for _, m := range p.AllMethods() {
		m.AllBlocks = resolveAllBlocks(m)
	}

	for _, c := range p.AllClasses() {
		c.AllStatements = flattenClassStatements(c)
	}
}

// resolveCallGraph turns every block's raw InvokedNames into resolved
// InvokedMethods, by name against every Method in the project — the same
// name-only granularity resolveType uses for field types. A name matching
// more than one Method (overloads, same-named methods on different classes)
// resolves to all of them.
func (p *Project) resolveCallGraph() {
	byName := make(map[string][]*Method)
	for _, m := range p.AllMethods() {
		byName[m.MethodName] = append(byName[m.MethodName], m)
	}
	for _, m := range p.AllMethods() {
		for _, b := range m.Blocks {
			for _, name := range b.InvokedNames {
				b.InvokedMethods = append(b.InvokedMethods, byName[name]...)
			}
		}
	}
}

// flattenClassStatements gathers the AllBlocks of every Method c declares,
// c's own "all statements" (own + reachable via invocations, §3).
func flattenClassStatements(c *Class) []*StatementBlock {
	all := make([]*StatementBlock, 0)
	for _, m := range c.Methods {
		all = append(all, m.AllBlocks...)
	}
	return all
}

func (p *Project) resolveMethodSignature(m *Method, seen map[typeKey]bool) {
	for _, param := range m.Parameters {
		p.resolveType(param.Type, seen)
	}
	if m.ReturnType != nil {
		p.resolveType(m.ReturnType, seen)
	}
}

// resolveType marks t user-defined (and computes its flattened non-user-
// defined field-type shape) iff a type of the same name was registered via
// RegisterUserType, recursing through field types of other user-defined types
// it references. Every Type instance naming a user type is marked; instances
// after the first reuse the shape computed for it.
func (p *Project) resolveType(t *Type, seen map[typeKey]bool) {
	if t == nil {
		return
	}
	key := t.key()
	owner, isUserType := p.userTypes[key]
	if !isUserType {
		return
	}
	if seen[key] {
		if owner.userDefined {
			t.markUserDefined(owner.nonUserDefined)
		}
		return
	}
	seen[key] = true

	var shape []*Type
	for _, c := range p.AllClasses() {
		if c.ClassName != owner.TypeName {
			continue
		}
		for _, v := range c.Variables {
			if v.Type == nil {
				continue
			}
			if _, userField := p.userTypes[v.Type.key()]; userField {
				p.resolveType(v.Type, seen)
				shape = append(shape, v.Type.nonUserDefined...)
			} else {
				shape = append(shape, v.Type)
			}
		}
	}
	owner.markUserDefined(shape)
	t.markUserDefined(shape)
}

// resolveAllBlocks flattens m's own Blocks with the Blocks of every Method it
// transitively invokes, stopping at direct self-recursion (§4.5).
func resolveAllBlocks(m *Method) []*StatementBlock {
	visited := map[*Method]bool{m: true}
	all := make([]*StatementBlock, 0, len(m.Blocks))
	all = append(all, m.Blocks...)

	queue := make([]*Method, 0)
	for _, b := range m.Blocks {
		queue = append(queue, b.InvokedMethods...)
	}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil || visited[next] {
			continue
		}
		visited[next] = true
		all = append(all, next.Blocks...)
		for _, b := range next.Blocks {
			queue = append(queue, b.InvokedMethods...)
		}
	}
	return all
}

func (p *Project) Compare(other report.Entity, fastScan bool) report.Report {
	o, ok := other.(*Project)
	if !ok {
		panic(fmt.Sprintf("entity: cannot compare Project with %T", other))
	}
	if p.LanguageTag != o.LanguageTag {
		return report.New(0, 0, p, o)
	}
	return match.Collection(p, o, p.Files, o.Files, fastScan, p.Cfg, Missing,
		func(x, y *File, fs bool) report.Report { return x.Compare(y, fs) })
}
