package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-serialpub"
	"github.com/alnah/go-serialpub/internal/config"
	"github.com/alnah/go-serialpub/internal/hints"
)

// loadSite resolves the site configuration.
// Precedence: CLI flags > SERIALPUB_* env vars > config file > defaults.
// Without --config or SERIALPUB_CONFIG, a missing serialpub.yaml falls back
// to the defaults rooted in the working directory.
func loadSite(f commonFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()
	if !f.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	name := f.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	var err error
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				err = fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg, err = config.LoadConfig(config.DefaultName)
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			cfg = config.DefaultConfig()
		case err != nil:
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies CLI flag values over the config (CLI wins).
func mergeFlags(f commonFlags, cfg *config.Config) {
	if f.root != "" {
		cfg.Paths.Root = f.root
	}
}

// newLogger builds a console logger on w. Warnings and errors are shown by
// default, errors only with quiet, everything with verbose.
func newLogger(w io.Writer, quiet, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	switch {
	case quiet:
		level = zapcore.ErrorLevel
	case verbose:
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// newPublisher loads the site and creates a Publisher with the CLI's clock
// and a logger on stderr. The logger is returned for commands that log
// outside the Publisher.
func newPublisher(f commonFlags, env *Environment) (*serialpub.Publisher, *config.Config, *zap.Logger, error) {
	cfg, err := loadSite(f, env)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := newLogger(env.Stderr, f.quiet, f.verbose)
	pub, err := serialpub.NewPublisher(cfg,
		serialpub.WithClock(env.Now),
		serialpub.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return pub, cfg, logger, nil
}

// printChanges writes one line per artifact, with paths relative to root.
// With diffs, unified diffs follow each changed artifact.
func printChanges(w io.Writer, root string, changes []serialpub.Change, diffs bool) {
	for _, c := range changes {
		fmt.Fprintf(w, "  %-9s %s", c.Action, displayPath(root, c.Path))
		if c.Action != serialpub.ActionUnchanged {
			fmt.Fprintf(w, " (+%d -%d)", c.Added, c.Removed)
		}
		fmt.Fprintln(w)
		if diffs && c.Diff != "" {
			fmt.Fprint(w, c.Diff)
		}
	}
}

// displayPath shortens p to a root-relative path when possible.
func displayPath(root, p string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(abs, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return filepath.ToSlash(rel)
}
