package acquire

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/go-git/go-git/v5"
)

// CloneOrUpdate fetches target into destDir/target.Name: a fresh clone if the
// directory doesn't hold a repository yet, otherwise a pull — the Go,
// go-git-based equivalent of _single_clone's "clone, else pull" fallback,
// minus the shell-out to the system git binary.
func CloneOrUpdate(target Target, destDir string) error {
	repoDir := filepath.Join(destDir, target.Name)

	repo, err := git.PlainClone(repoDir, false, &git.CloneOptions{URL: target.URL})
	if err == nil {
		return nil
	}
	if !errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return fmt.Errorf("acquire: cloning %s: %w", target.Name, err)
	}

	repo, err = git.PlainOpen(repoDir)
	if err != nil {
		return fmt.Errorf("acquire: opening existing repo %s: %w", target.Name, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("acquire: worktree for %s: %w", target.Name, err)
	}
	if err := wt.Pull(&git.PullOptions{}); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("acquire: pulling %s: %w", target.Name, err)
	}
	return nil
}

// CloneAll fetches every target into destDir concurrently, bounded by
// runtime.NumCPU(), mirroring parallel_clone_projects's thread-per-clone
// model but capped instead of unbounded. Per-target failures are collected
// rather than aborting the batch (§7 acquisition error policy).
func CloneAll(targets []Target, destDir string) []error {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan Target, len(targets))
	for _, t := range targets {
		jobs <- t
	}
	close(jobs)

	var mu sync.Mutex
	var errs []error
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				if err := CloneOrUpdate(t, destDir); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	return errs
}
