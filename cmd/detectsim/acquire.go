package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/oxhq/detectsim/internal/acquire"
)

// resolveSources returns the local directory holding one side (templates or
// submissions) of the batch: either the directory the caller already
// populated (--offline / --*-directory) or a freshly cloned one, built from
// a catalogue file or GitLab group discovery.
func resolveSources(o *options, label, explicitDir, catalogueFile string, logger *slog.Logger) (string, error) {
	if o.offline || explicitDir != "" {
		if explicitDir == "" {
			if label != "projects" {
				// Templates are optional: offline, no directory means none.
				return "", nil
			}
			return "", fmt.Errorf("%s: --offline set but no local directory given", label)
		}
		return explicitDir, nil
	}

	var targets []acquire.Target
	var err error
	if catalogueFile != "" {
		targets, err = acquire.ParseCatalogueFile(catalogueFile)
		if err != nil {
			return "", fmt.Errorf("%s: reading catalogue: %w", label, err)
		}
	} else if label == "projects" {
		client := acquire.NewGitLabClient(o.token)
		targets, err = client.DiscoverTargets(o.groupID, o.nameRegex)
		if err != nil {
			return "", fmt.Errorf("%s: discovering GitLab targets: %w", label, err)
		}
	}

	if len(targets) == 0 {
		logger.Warn("no remote targets found", "label", label)
		return "", nil
	}

	destDir := filepath.Join(os.TempDir(), "detectsim-"+label)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("%s: creating fetch directory: %w", label, err)
	}

	for _, cloneErr := range acquire.CloneAll(targets, destDir) {
		logger.Warn("clone failed", "label", label, "error", cloneErr)
	}
	return destDir, nil
}
