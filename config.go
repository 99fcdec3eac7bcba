package serialpub

import "github.com/alnah/go-serialpub/internal/config"

// Config is the site configuration. See the field docs on each section.
type Config = config.Config

// Configuration sections.
type (
	SiteConfig      = config.SiteConfig
	SeriesConfig    = config.SeriesConfig
	PathsConfig     = config.PathsConfig
	FeedConfig      = config.FeedConfig
	TemplatesConfig = config.TemplatesConfig
)

// Config errors, re-exported for errors.Is checks by library users.
var (
	ErrConfigNotFound = config.ErrConfigNotFound
	ErrConfigParse    = config.ErrConfigParse
	ErrConfigInvalid  = config.ErrConfigInvalid
)

// DefaultConfig returns the built-in site configuration.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig loads a site configuration from a file path or a config name
// searched in the working directory and the user config directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	return config.LoadConfig(nameOrPath)
}
