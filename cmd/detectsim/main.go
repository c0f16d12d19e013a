// Command detectsim compares a batch of source-code projects against one
// another (and against a set of starter templates) for structural
// similarity, and renders the results as a spreadsheet. Grounded on
// cmd/morfx's flag-driven command shape and original_source/main.py's
// clone -> load -> compare -> render run order.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/history"
	"github.com/oxhq/detectsim/internal/parse"
	_ "github.com/oxhq/detectsim/internal/parse/golang"
	_ "github.com/oxhq/detectsim/internal/parse/javascript"
	_ "github.com/oxhq/detectsim/internal/parse/php"
	_ "github.com/oxhq/detectsim/internal/parse/python"
	_ "github.com/oxhq/detectsim/internal/parse/typescript"
	"github.com/oxhq/detectsim/internal/render"
	"github.com/oxhq/detectsim/internal/schedule"
)

func main() {
	fs := cobra.Command{
		Use:   "detectsim",
		Short: "Structural similarity detector for student project submissions",
	}
	o := bindFlags(fs.Flags())
	fs.RunE = func(cmd *cobra.Command, args []string) error {
		return run(o)
	}

	if err := fs.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(o *options) error {
	if o.env != "" {
		_ = godotenv.Load(o.env)
	}
	if err := o.validate(); err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if o.debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	templatesDir, err := resolveSources(o, "templates", o.templatesDir, o.templatesFile, logger)
	if err != nil {
		return err
	}
	projectsDir, err := resolveSources(o, "projects", o.projectsDir, o.projectsFile, logger)
	if err != nil {
		return err
	}
	if projectsDir == "" {
		return fmt.Errorf("no project sources resolved")
	}

	if o.cloneOnly {
		logger.Info("clone-only: fetch complete, exiting")
		return nil
	}

	cfg := settingsFromOptions(o)
	driver := parse.NewDriver(cfg)

	var projects []*entity.Project
	var skipped []string
	if templatesDir != "" {
		loaded, skip, err := loadAll(driver, templatesDir, true, logger)
		if err != nil {
			return err
		}
		projects = append(projects, loaded...)
		skipped = append(skipped, skip...)
	}
	loaded, skip, err := loadAll(driver, projectsDir, false, logger)
	if err != nil {
		return err
	}
	projects = append(projects, loaded...)
	skipped = append(skipped, skip...)

	logger.Info("loaded projects", "count", len(projects), "skipped", len(skipped))

	pairs := schedule.BuildPairs(projects)
	logger.Info("built comparison pairs", "count", len(pairs))

	sched := schedule.New(cfg.Workers, cfg.FastScan)
	start := time.Now()
	sched.OnProgress = func(p schedule.Progress) {
		if p.Done%25 == 0 || p.Done == p.Total {
			logger.Debug("progress", "done", p.Done, "total", p.Total, "eta", p.ETA)
		}
	}
	results := sched.Run(pairs)
	logger.Info("comparisons complete", "elapsed", time.Since(start))

	var recorder *history.Recorder
	if o.historyDSN != "" {
		db, err := history.Connect(o.historyDSN, o.debug)
		if err != nil {
			logger.Warn("history: could not connect, continuing without persistence", "error", err)
		} else if recorder, err = history.StartRun(db, cfg); err != nil {
			logger.Warn("history: could not start run, continuing without persistence", "error", err)
			recorder = nil
		}
	}

	wb := render.New(cfg)
	for _, name := range skipped {
		wb.AddSkipped(name)
	}
	failures := 0
	for _, res := range results {
		if res.Err != nil {
			failures++
			logger.Error("comparison failed", "first", res.Pair.First.Name(), "second", res.Pair.Second.Name(), "error", res.Err)
		}
		wb.Add(res)
		if recorder != nil {
			if err := recorder.RecordResult(res); err != nil {
				logger.Warn("history: failed to record result", "error", err)
			}
		}
	}
	wb.Render()

	if recorder != nil {
		if err := recorder.Finish(len(projects), len(pairs), failures); err != nil {
			logger.Warn("history: failed to finalize run", "error", err)
		}
	}

	outPath := o.out
	if outPath == "" {
		outPath = fmt.Sprintf("detectsim-%s.xlsx", time.Now().Format("20060102-150405"))
	}
	if err := wb.SaveAs(outPath); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}

	logger.Info("run complete", "output", outPath, "pairs", len(pairs), "failures", failures)
	return nil
}

// loadAll treats every immediate subdirectory of root as one project,
// auto-detecting its language when no single adapter is registered for
// the whole root. A subdirectory that never becomes a usable Project — no
// detectable language, a load failure, or zero parseable source files once
// parsed — is recorded as skipped instead of silently vanishing from the run
// (§4.9/§6/§7's skipped-projects reporting contract).
func loadAll(driver *parse.Driver, root string, isTemplate bool, logger *slog.Logger) ([]*entity.Project, []string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var projects []*entity.Project
	var skipped []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())

		lang, ok := parse.DetectLanguage(dir)
		if !ok {
			logger.Warn("could not detect language, skipping", "dir", dir)
			skipped = append(skipped, e.Name())
			continue
		}

		proj, warnings, err := driver.LoadProject(dir, e.Name(), lang, isTemplate)
		if err != nil {
			logger.Warn("failed to load project", "dir", dir, "error", err)
			skipped = append(skipped, e.Name())
			continue
		}
		for _, w := range warnings {
			logger.Warn("parse warning", "dir", dir, "detail", w)
		}
		if len(proj.Files) == 0 {
			logger.Warn("zero parseable files, skipping", "dir", dir)
			skipped = append(skipped, e.Name())
			continue
		}
		projects = append(projects, proj)
	}
	return projects, skipped, nil
}
