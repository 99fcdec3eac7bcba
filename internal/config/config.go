// Package config loads and validates the YAML site configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/alnah/go-serialpub/internal/dateutil"
	"github.com/alnah/go-serialpub/internal/fileutil"
	"github.com/alnah/go-serialpub/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// DefaultName is the config name looked up when --config is not given.
const DefaultName = "serialpub"

// appDirName is the directory under the user config dir holding named configs.
const appDirName = "serialpub"

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxAuthorLength      = 100
	MaxURLLength         = 2048
	MaxSeriesLength      = 366
)

var templateNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validation errors name fields by their YAML keys, as written in the file.
func init() {
	validation.ErrorTag = "yaml"
}

// Config holds all configuration for a serial site.
type Config struct {
	Site       SiteConfig      `yaml:"site"`
	Series     SeriesConfig    `yaml:"series"`
	Paths      PathsConfig     `yaml:"paths"`
	Feed       FeedConfig      `yaml:"feed"`
	Templates  TemplatesConfig `yaml:"templates"`
	DateFormat string          `yaml:"dateFormat"` // display format, see dateutil tokens
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"baseURL"` // absolute, used for feed links
	Language    string `yaml:"language"`
	Author      string `yaml:"author"`
}

// SeriesConfig maps chapter numbers to calendar days.
type SeriesConfig struct {
	Start  string `yaml:"start"`  // YYYY-MM-DD of chapter 1
	Length int    `yaml:"length"` // number of chapters
}

// PathsConfig locates inputs and outputs. Relative paths resolve against Root.
type PathsConfig struct {
	Root        string `yaml:"root"`
	Manuscript  string `yaml:"manuscript"`
	Chapters    string `yaml:"chapters"`
	ArchiveJSON string `yaml:"archiveJSON"`
	ArchiveHTML string `yaml:"archiveHTML"`
	Feed        string `yaml:"feed"`
}

// FeedConfig bounds the syndication feed.
type FeedConfig struct {
	Limit int `yaml:"limit"` // most recent N chapters; 0 = all
}

// TemplatesConfig selects page templates.
type TemplatesConfig struct {
	Dir     string `yaml:"dir"`     // override directory; empty = built-in only
	Chapter string `yaml:"chapter"` // template name without .html
	Archive string `yaml:"archive"`
}

// DefaultConfig returns the configuration of the 2026 serial.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:       "A Likely Story",
			Description: "A 365-chapter story, one for each day of 2026.",
			BaseURL:     "https://alikelystory.org",
			Language:    "en",
		},
		Series: SeriesConfig{
			Start:  "2026-01-01",
			Length: 365,
		},
		Paths: PathsConfig{
			Root:        ".",
			Manuscript:  "manuscript",
			Chapters:    "chapters",
			ArchiveJSON: "chapters.json",
			ArchiveHTML: "chapters.html",
			Feed:        "rss.xml",
		},
		Feed: FeedConfig{Limit: 30},
		Templates: TemplatesConfig{
			Chapter: "chapter",
			Archive: "archive",
		},
		DateFormat: dateutil.DefaultDisplayFormat,
	}
}

// Validate checks every section. Errors wrap ErrConfigInvalid.
func (c *Config) Validate() error {
	err := validation.Errors{
		"site":       c.Site.Validate(),
		"series":     c.Series.Validate(),
		"paths":      c.Paths.Validate(),
		"feed":       c.Feed.Validate(),
		"templates":  c.Templates.Validate(),
		"dateFormat": validation.Validate(c.DateFormat, validation.Required, validation.By(validDateFormat)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}

// Validate validates the site section.
func (s SiteConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&s.Description, validation.Length(0, MaxDescriptionLength)),
		validation.Field(&s.BaseURL, validation.Required, validation.Length(1, MaxURLLength), is.URL,
			validation.By(httpScheme)),
		validation.Field(&s.Language, validation.Length(0, 35)),
		validation.Field(&s.Author, validation.Length(0, MaxAuthorLength)),
	)
}

// Validate validates the series section.
func (s SeriesConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Start, validation.Required, validation.By(validISODate)),
		validation.Field(&s.Length, validation.Required, validation.Min(1), validation.Max(MaxSeriesLength)),
	)
}

// Validate validates the paths section.
func (p PathsConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Root, validation.Required),
		validation.Field(&p.Manuscript, validation.Required),
		validation.Field(&p.Chapters, validation.Required),
		validation.Field(&p.ArchiveJSON, validation.Required),
		validation.Field(&p.ArchiveHTML, validation.Required),
		validation.Field(&p.Feed, validation.Required),
	)
}

// Validate validates the feed section.
func (f FeedConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Limit, validation.Min(0)),
	)
}

// Validate validates the templates section.
func (t TemplatesConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Chapter, validation.Required, validation.Match(templateNamePattern)),
		validation.Field(&t.Archive, validation.Required, validation.Match(templateNamePattern)),
	)
}

func validISODate(value any) error {
	s, _ := value.(string)
	if _, err := dateutil.ParseISO(s); err != nil {
		return errors.New("must be a date in YYYY-MM-DD form")
	}
	return nil
}

func validDateFormat(value any) error {
	s, _ := value.(string)
	if _, err := dateutil.ParseDateFormat(s); err != nil {
		return err
	}
	return nil
}

func httpScheme(value any) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return errors.New("must start with http:// or https://")
	}
	return nil
}

// StartDate returns the parsed series start. Call after Validate.
func (c *Config) StartDate() time.Time {
	t, _ := dateutil.ParseISO(c.Series.Start)
	return t
}

// BaseURL returns the site base URL without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.Site.BaseURL, "/")
}

// Resolve joins a configured path with Root unless it is already absolute.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Paths.Root, p)
}

// TemplateDir returns the resolved template override directory, or "".
func (c *Config) TemplateDir() string {
	if c.Templates.Dir == "" {
		return ""
	}
	return c.Resolve(c.Templates.Dir)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	// Relative roots are relative to the config file, not the caller's CWD.
	if !filepath.IsAbs(cfg.Paths.Root) {
		cfg.Paths.Root = filepath.Join(filepath.Dir(configPath), cfg.Paths.Root)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the locations LoadConfig tries for a config name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/serialpub/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
