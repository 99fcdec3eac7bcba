package main

// Notes:
// - loadEnvConfig: we test every SERIALPUB_* variable, and that invalid or
//   negative feed limits are ignored rather than reported.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: we test that set values override the config and unset
//   values leave it alone.
// - loadSite: we test flag > env > file precedence and the default fallback.
// - newPublisher: we test that the returned logger and the Publisher's
//   logger both write to the environment's stderr at the flag's level.
// - Tests use t.Setenv() which prevents t.Parallel().

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-serialpub"
	"github.com/alnah/go-serialpub/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("SERIALPUB_CONFIG", "/etc/serial.yaml")
		t.Setenv("SERIALPUB_ROOT", "/srv/site")
		t.Setenv("SERIALPUB_BASE_URL", "https://staging.example")
		t.Setenv("SERIALPUB_FEED_LIMIT", "0")

		cfg := loadEnvConfig()

		if cfg.ConfigPath != "/etc/serial.yaml" {
			t.Errorf("ConfigPath = %q", cfg.ConfigPath)
		}
		if cfg.Root != "/srv/site" {
			t.Errorf("Root = %q", cfg.Root)
		}
		if cfg.BaseURL != "https://staging.example" {
			t.Errorf("BaseURL = %q", cfg.BaseURL)
		}
		if cfg.FeedLimit != 0 {
			t.Errorf("FeedLimit = %d, want 0", cfg.FeedLimit)
		}
	})

	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", -1},
		{"positive", "12", 12},
		{"negative ignored", "-3", -1},
		{"garbage ignored", "ten", -1},
	}
	for _, tt := range tests {
		t.Run("feed limit "+tt.name, func(t *testing.T) {
			t.Setenv("SERIALPUB_FEED_LIMIT", tt.value)
			if got := loadEnvConfig().FeedLimit; got != tt.want {
				t.Errorf("FeedLimit = %d, want %d", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("SERIALPUB_BASEURL", "https://typo.example")
	t.Setenv("SERIALPUB_ROOT", "/srv/site")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "SERIALPUB_BASEURL") {
		t.Errorf("expected warning for SERIALPUB_BASEURL, got %q", out)
	}
	if strings.Contains(out, "SERIALPUB_ROOT") {
		t.Errorf("known variable SERIALPUB_ROOT should not warn, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Overrides
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{Root: "/srv", BaseURL: "https://b.example", FeedLimit: 5}, cfg)

		if cfg.Paths.Root != "/srv" || cfg.Site.BaseURL != "https://b.example" || cfg.Feed.Limit != 5 {
			t.Errorf("config not overridden: root=%q baseURL=%q limit=%d",
				cfg.Paths.Root, cfg.Site.BaseURL, cfg.Feed.Limit)
		}
	})

	t.Run("unset values keep config", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		want := *cfg
		applyEnvConfig(&envConfig{FeedLimit: -1}, cfg)

		if cfg.Paths.Root != want.Paths.Root || cfg.Site.BaseURL != want.Site.BaseURL || cfg.Feed.Limit != want.Feed.Limit {
			t.Errorf("config changed without env values")
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadSite - Precedence
// ---------------------------------------------------------------------------

func TestLoadSite(t *testing.T) {
	env := (&testEnv{}).env()

	t.Run("env config path and overrides", func(t *testing.T) {
		root, cfgPath := newSite(t)
		t.Setenv("SERIALPUB_CONFIG", cfgPath)
		t.Setenv("SERIALPUB_BASE_URL", "https://staging.example")
		t.Setenv("SERIALPUB_FEED_LIMIT", "7")

		cfg, err := loadSite(commonFlags{}, env)
		if err != nil {
			t.Fatalf("loadSite() error = %v", err)
		}
		if cfg.Site.Title != "Harbor Lights" {
			t.Errorf("Title = %q, want value from file", cfg.Site.Title)
		}
		if cfg.Site.BaseURL != "https://staging.example" {
			t.Errorf("BaseURL = %q, want env value", cfg.Site.BaseURL)
		}
		if cfg.Feed.Limit != 7 {
			t.Errorf("Feed.Limit = %d, want 7", cfg.Feed.Limit)
		}
		if cfg.Paths.Root != root {
			t.Errorf("Root = %q, want %q", cfg.Paths.Root, root)
		}
	})

	t.Run("flags win over env", func(t *testing.T) {
		_, cfgPath := newSite(t)
		t.Setenv("SERIALPUB_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
		t.Setenv("SERIALPUB_ROOT", "/from/env")

		cfg, err := loadSite(commonFlags{config: cfgPath, root: "/from/flag"}, env)
		if err != nil {
			t.Fatalf("loadSite() error = %v", err)
		}
		if cfg.Paths.Root != "/from/flag" {
			t.Errorf("Root = %q, want /from/flag", cfg.Paths.Root)
		}
	})

	t.Run("invalid env value fails validation", func(t *testing.T) {
		_, cfgPath := newSite(t)
		t.Setenv("SERIALPUB_BASE_URL", "ftp://nope")

		_, err := loadSite(commonFlags{config: cfgPath}, env)
		if !errors.Is(err, config.ErrConfigInvalid) {
			t.Errorf("loadSite() error = %v, want ErrConfigInvalid", err)
		}
	})

	t.Run("no config anywhere uses defaults", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("HOME", dir)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

		cfg, err := loadSite(commonFlags{}, env)
		if err != nil {
			t.Fatalf("loadSite() error = %v", err)
		}
		if cfg.Site.Title != config.DefaultConfig().Site.Title {
			t.Errorf("Title = %q, want default", cfg.Site.Title)
		}
	})

	t.Run("named config that does not exist", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := loadSite(commonFlags{config: "nightly"}, env)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("loadSite() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nightly.yaml") {
			t.Errorf("error should list searched paths: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDisplayPath - Root-relative output paths
// ---------------------------------------------------------------------------

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "elsewhere", "x.html")
	tests := []struct {
		name string
		path string
		want string
	}{
		{"inside root", filepath.Join(root, "chapters", "001.html"), "chapters/001.html"},
		{"root file", filepath.Join(root, "rss.xml"), "rss.xml"},
		{"outside root", outside, outside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := displayPath(root, tt.path); got != tt.want {
				t.Errorf("displayPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		quiet, verbose bool
		wantWarn       bool
		wantDebug      bool
	}{
		{"default", false, false, true, false},
		{"quiet", true, false, false, false},
		{"verbose", false, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.quiet, tt.verbose)
			logger.Warn("low tide")
			logger.Debug("buoy 4")

			if got := strings.Contains(buf.String(), "low tide"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
			if got := strings.Contains(buf.String(), "buoy 4"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewPublisher - One logger per command
// ---------------------------------------------------------------------------

func TestNewPublisher_SharesLogger(t *testing.T) {
	te := &testEnv{}
	_, cfgPath := newSite(t)

	pub, _, logger, err := newPublisher(commonFlags{config: cfgPath, verbose: true}, te.env())
	if err != nil {
		t.Fatalf("newPublisher() error = %v", err)
	}
	if logger == nil {
		t.Fatal("newPublisher() returned a nil logger")
	}

	if _, err := pub.Rebuild(context.Background(), serialpub.PublishOptions{DryRun: true}); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	logger.Debug("watcher started")

	out := te.stderr.String()
	for _, want := range []string{"indexes rebuilt", "watcher started"} {
		if !strings.Contains(out, want) {
			t.Errorf("stderr = %q, want it to contain %q", out, want)
		}
	}
}
