package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-serialpub/internal/config"
)

// envPrefix marks the variables read by the CLI.
const envPrefix = "SERIALPUB_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without editing the site YAML.
type envConfig struct {
	ConfigPath string // SERIALPUB_CONFIG: config file name or path
	Root       string // SERIALPUB_ROOT: site root directory
	BaseURL    string // SERIALPUB_BASE_URL: absolute site URL
	FeedLimit  int    // SERIALPUB_FEED_LIMIT: feed bound, -1 when unset or invalid
}

// knownEnvVars lists valid SERIALPUB_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SERIALPUB_CONFIG":     true,
	"SERIALPUB_ROOT":       true,
	"SERIALPUB_BASE_URL":   true,
	"SERIALPUB_FEED_LIMIT": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("SERIALPUB_CONFIG"),
		Root:       os.Getenv("SERIALPUB_ROOT"),
		BaseURL:    os.Getenv("SERIALPUB_BASE_URL"),
		FeedLimit:  -1,
	}

	// 0 is meaningful (unbounded feed), so only negatives and garbage are ignored
	if limit := os.Getenv("SERIALPUB_FEED_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n >= 0 {
			cfg.FeedLimit = n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized SERIALPUB_* variables.
// Helps catch typos like SERIALPUB_BASEURL instead of SERIALPUB_BASE_URL.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Root != "" {
		cfg.Paths.Root = env.Root
	}
	if env.BaseURL != "" {
		cfg.Site.BaseURL = env.BaseURL
	}
	if env.FeedLimit >= 0 {
		cfg.Feed.Limit = env.FeedLimit
	}
}
