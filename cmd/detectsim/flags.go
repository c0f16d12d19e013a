package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/oxhq/detectsim/internal/settings"
)

// options holds every spec.md §6 flag, parsed once in main and threaded
// through the run, mirroring cmd/morfx's buildConfigFromFlags shape (a single
// flat struct built from a pflag.FlagSet) without morfx's transformation-only
// fields.
type options struct {
	out           string
	env           string
	projectsFile  string
	templatesFile string
	token         string
	groupID       string
	offline       bool
	cloneOnly     bool
	fast          bool
	cpu           int
	projectsDir   string
	templatesDir  string
	weight        bool
	legacyColor   bool
	nameRegex     string
	debug         bool
	historyDSN    string
}

func bindFlags(fs *pflag.FlagSet) *options {
	o := &options{}
	fs.StringVar(&o.out, "out", "", "Output spreadsheet filename (defaults to a timestamped name)")
	fs.StringVar(&o.env, "env", "", "Environment file loaded into the process environment (--token and --group-id are not read from it)")
	fs.StringVar(&o.projectsFile, "projects-file", "", "File of 'url [name]' lines describing projects to fetch")
	fs.StringVar(&o.templatesFile, "templates-file", "", "Same as --projects-file, for templates")
	fs.StringVar(&o.token, "token", "", "Remote (GitLab) access token")
	fs.StringVar(&o.groupID, "group-id", "", "Remote root group identifier")
	fs.BoolVar(&o.offline, "offline", false, "Skip any remote fetch")
	fs.BoolVar(&o.cloneOnly, "clone-only", false, "Fetch and exit")
	fs.BoolVar(&o.fast, "fast", false, "Enable the fast-scan gate")
	fs.IntVar(&o.cpu, "cpu", 0, "Worker count (0 means runtime.NumCPU()-1)")
	fs.StringVar(&o.projectsDir, "projects-directory", "", "Local directory of already-fetched project sources")
	fs.StringVar(&o.templatesDir, "templates-directory", "", "Local directory of already-fetched template sources")
	fs.BoolVar(&o.weight, "weight", false, "Include the weight column in detail sheets")
	fs.BoolVar(&o.legacyColor, "legacy-color", false, "Use the three-band palette instead of the continuous gradient")
	fs.StringVar(&o.nameRegex, "project-name-regex", "", "Case-insensitive filter applied to remote project names")
	fs.BoolVar(&o.debug, "debug", false, "Verbose logging")
	fs.StringVar(&o.historyDSN, "history", "", "Optional SQLite/Turso DSN to persist run results incrementally (supplemental, not in the original tool)")
	return o
}

// validate enforces the mutually-required flag combinations spec.md §7's
// "configuration error" category covers (returned before any goroutine starts).
func (o *options) validate() error {
	if o.offline {
		if o.projectsDir == "" {
			return fmt.Errorf("--offline requires --projects-directory")
		}
		return nil
	}
	if o.projectsFile == "" && (o.token == "" || o.groupID == "") {
		return fmt.Errorf("either --projects-file or both --token and --group-id are required unless --offline is set")
	}
	return nil
}

// settingsFromOptions builds the immutable comparator configuration for a run.
func settingsFromOptions(o *options) *settings.Config {
	cfg := settings.Default()
	cfg.FastScan = o.fast
	cfg.Workers = o.cpu
	cfg.Weight = o.weight
	cfg.LegacyColor = o.legacyColor
	return cfg
}
