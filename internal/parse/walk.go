package parse

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultExcludes mirrors the directories core.FileWalker's callers always
// pass in practice: VCS metadata and dependency caches that are never part
// of a student's own source.
var defaultExcludes = []string{
	"**/.git/**", "**/node_modules/**", "**/vendor/**",
	"**/.venv/**", "**/__pycache__/**", "**/dist/**", "**/build/**",
}

// walkSourceFiles discovers every file under root whose extension matches one
// of exts, skipping the directories in defaultExcludes. It parallelizes the
// per-directory stat/read work the way core.FileWalker does, but returns a
// single sorted slice since callers need the full file list before they can
// build a Project.
func walkSourceFiles(root string, exts []string) ([]string, error) {
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = true
	}

	type job struct{ path string }
	jobs := make(chan job, 256)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var matched []string

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				ext := strings.ToLower(filepath.Ext(j.path))
				if extSet[ext] {
					mu.Lock()
					matched = append(matched, j.path)
					mu.Unlock()
				}
			}
		}()
	}

	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if isExcluded(path, root) {
				return filepath.SkipDir
			}
			return nil
		}
		jobs <- job{path: path}
		return nil
	})
	close(jobs)
	wg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(matched)
	return matched, nil
}

func isExcluded(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range defaultExcludes {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, rel+"/"); matched {
			return true
		}
	}
	return false
}
