package parse

import (
	"os"
	"path/filepath"
	"strings"
)

// DetectLanguage chooses the dominant source language of a directory by
// counting files whose extension belongs to a registered Adapter. It
// returns ("", false) when the directory contains no recognized source file,
// per §4.9's language-detector contract.
func DetectLanguage(root string) (string, bool) {
	counts := make(map[string]int)

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if isExcluded(path, root) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if adapter, ok := LookupByExtension(ext); ok {
			counts[adapter.Language()]++
		}
		return nil
	})

	best := ""
	bestCount := 0
	for tag, n := range counts {
		if n > bestCount || (n == bestCount && tag < best) {
			best, bestCount = tag, n
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return best, true
}
