package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks command-line mistakes: bad flags, missing or extra arguments.
var ErrUsage = errors.New("usage error")

// errHelpRequested is returned after a command printed its help for -h.
var errHelpRequested = errors.New("help requested")

// defaultDebounce is how long watch waits for a file to settle.
const defaultDebounce = 300 * time.Millisecond

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	root    string
	quiet   bool
	verbose bool
}

// planFlags holds flags for commands that write the site.
type planFlags struct {
	dryRun bool
	diff   bool
}

// publishFlags holds flags for the publish command.
type publishFlags struct {
	common commonFlags
	plan   planFlags
}

// rebuildFlags holds flags for the rebuild command.
type rebuildFlags struct {
	common commonFlags
	plan   planFlags
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common commonFlags
	json   bool
}

// watchFlags holds flags for the watch command.
type watchFlags struct {
	common   commonFlags
	debounce time.Duration
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.root, "root", "r", "", "site root directory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addPlanFlags adds dry-run flags to a FlagSet.
func addPlanFlags(fs *flag.FlagSet, f *planFlags) {
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "show what would change without writing")
	fs.BoolVar(&f.diff, "diff", false, "print unified diffs (with --dry-run)")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseArgs parses args and wraps flag errors in ErrUsage.
func parseArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return errHelpRequested
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// buildPublishFlagSet registers the publish flags on a new FlagSet.
func buildPublishFlagSet(f *publishFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("publish", printPublishUsage, stderr)
	addCommonFlags(fs, &f.common)
	addPlanFlags(fs, &f.plan)
	return fs
}

// buildRebuildFlagSet registers the rebuild flags on a new FlagSet.
func buildRebuildFlagSet(f *rebuildFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("rebuild", printRebuildUsage, stderr)
	addCommonFlags(fs, &f.common)
	addPlanFlags(fs, &f.plan)
	return fs
}

// buildCheckFlagSet registers the check flags on a new FlagSet.
func buildCheckFlagSet(f *checkFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("check", printCheckUsage, stderr)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	return fs
}

// buildWatchFlagSet registers the watch flags on a new FlagSet.
func buildWatchFlagSet(f *watchFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("watch", printWatchUsage, stderr)
	addCommonFlags(fs, &f.common)
	fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "wait for writes to settle before publishing")
	return fs
}

// parsePublishFlags parses publish command flags and returns positional args.
func parsePublishFlags(args []string, stderr io.Writer) (*publishFlags, []string, error) {
	f := &publishFlags{}
	fs := buildPublishFlagSet(f, stderr)
	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRebuildFlags parses rebuild command flags.
func parseRebuildFlags(args []string, stderr io.Writer) (*rebuildFlags, error) {
	f := &rebuildFlags{}
	fs := buildRebuildFlagSet(f, stderr)
	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: rebuild takes no arguments, got %q", ErrUsage, fs.Args())
	}
	return f, nil
}

// parseCheckFlags parses check command flags.
func parseCheckFlags(args []string, stderr io.Writer) (*checkFlags, error) {
	f := &checkFlags{}
	fs := buildCheckFlagSet(f, stderr)
	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: check takes no arguments, got %q", ErrUsage, fs.Args())
	}
	return f, nil
}

// parseWatchFlags parses watch command flags.
func parseWatchFlags(args []string, stderr io.Writer) (*watchFlags, error) {
	f := &watchFlags{}
	fs := buildWatchFlagSet(f, stderr)
	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: watch takes no arguments, got %q", ErrUsage, fs.Args())
	}
	if f.debounce < 0 {
		return nil, fmt.Errorf("%w: --debounce must not be negative", ErrUsage)
	}
	return f, nil
}
