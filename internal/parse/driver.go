package parse

import (
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/settings"
)

// Driver loads whole project directories into entity.Project trees. It is
// safe for concurrent use: LoadProject keeps no per-call state on the
// Driver, and the only shared mutable state is the lock-free AST cache.
type Driver struct {
	cfg *settings.Config
}

// NewDriver builds a Driver sharing cfg across every load.
func NewDriver(cfg *settings.Config) *Driver {
	return &Driver{cfg: cfg}
}

// LoadProject walks dir, parses every file matching languageTag's registered
// Adapter, and returns a fully Resolve-d Project. Per-file parse failures are
// collected as warnings rather than aborting the load (§4.9).
func (d *Driver) LoadProject(dir, name, languageTag string, isTemplate bool) (*entity.Project, []string, error) {
	adapter, ok := Lookup(languageTag)
	if !ok {
		return nil, nil, fmt.Errorf("parse: no adapter registered for language %q", languageTag)
	}

	paths, err := walkSourceFiles(dir, adapter.Extensions())
	if err != nil {
		return nil, nil, fmt.Errorf("parse: walking %s: %w", dir, err)
	}

	proj := entity.NewProject(name, languageTag, isTemplate, d.cfg)

	parser := sitter.NewParser()
	parser.SetLanguage(adapter.Grammar())

	var warnings []string
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		source := string(raw)

		tree, err := globalASTCache.getOrParse(parser, languageTag, source)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: parse error: %v", path, err))
			continue
		}

		root := tree.RootNode()
		if root == nil || root.HasError() {
			warnings = append(warnings, fmt.Sprintf("%s: syntax error, skipped", path))
			tree.Close()
			continue
		}

		file := adapter.BuildFile(proj, path, source, root)
		tree.Close()
		if file != nil {
			proj.Files = append(proj.Files, file)
		}
	}

	proj.Resolve()
	return proj, warnings, nil
}
