// Package parse turns a directory on disk into a populated entity.Project: it
// walks the filesystem, hands each file's contents to a tree-sitter grammar,
// and folds the resulting syntax tree into the entity model one language
// adapter at a time. Each internal/parse/<lang> subpackage owns the grammar
// choice and the tree-walking logic for its language and registers an
// Adapter; Driver itself stays language-agnostic, the same division of
// labor as providers/base.Provider and its LanguageConfig.
package parse

import (
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/detectsim/internal/entity"
)

// Adapter is implemented once per supported source language.
type Adapter interface {
	Language() string
	Extensions() []string
	Grammar() *sitter.Language

	// BuildFile folds one file's already-parsed syntax tree into the entity
	// model, attaching any user-defined types it declares to proj via
	// proj.RegisterUserType. path is relative to the project root.
	BuildFile(proj *entity.Project, path string, source string, root *sitter.Node) *entity.File
}

var (
	mu       sync.RWMutex
	byLang   = make(map[string]Adapter)
	byExt    = make(map[string]Adapter)
)

// Register adds an Adapter to the process-wide registry. Each
// internal/parse/<lang> package calls this from an init func.
func Register(adapter Adapter) {
	mu.Lock()
	defer mu.Unlock()
	byLang[adapter.Language()] = adapter
	for _, ext := range adapter.Extensions() {
		byExt[strings.ToLower(ext)] = adapter
	}
}

// Lookup returns the adapter registered under a language tag.
func Lookup(tag string) (Adapter, bool) {
	mu.RLock()
	defer mu.RUnlock()
	adapter, ok := byLang[tag]
	return adapter, ok
}

// LookupByExtension returns the adapter whose Extensions include ext
// (including the leading dot).
func LookupByExtension(ext string) (Adapter, bool) {
	mu.RLock()
	defer mu.RUnlock()
	adapter, ok := byExt[strings.ToLower(ext)]
	return adapter, ok
}

// Tags returns every registered language tag, sorted.
func Tags() []string {
	mu.RLock()
	defer mu.RUnlock()
	tags := make([]string, 0, len(byLang))
	for tag := range byLang {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
