// Package config loads the c7ctl project configuration.
//
// Configuration is read from c7ctl.yaml in the working directory, falling
// back to <user config dir>/c7ctl/config.yaml. Environment variables used by
// the Context7 server itself (CONTEXT7_API_KEY, CONTEXT7_BASE_URL,
// CONTEXT7_LIBRARIES, CONTEXT7_DOCS_SOURCES) override file values.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// ErrorCode defines error types for configuration operations
type ErrorCode string

const (
	ErrConfigNotFound ErrorCode = "ConfigNotFound"
	ErrConfigParse    ErrorCode = "ConfigParse"
	ErrConfigInvalid  ErrorCode = "ConfigInvalid"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

const (
	// DefaultBaseURL is the Context7 API endpoint used when none is configured
	DefaultBaseURL = "https://api.context7.com"

	// FileName is the per-project configuration file name
	FileName = "c7ctl.yaml"
)

var validate = validator.New()

// Library describes a tracked library whose documentation is cached locally
type Library struct {
	// Name is the library name as known to Context7 (e.g. "vk-api", "aiohttp")
	Name string `yaml:"name" validate:"required"`

	// Version pins an expected version, shown by the versions command
	Version string `yaml:"version,omitempty"`

	// Topic narrows the documentation request (e.g. "routing", "long poll")
	Topic string `yaml:"topic,omitempty"`

	// DocsSources are extra web pages fetched alongside the Context7 docs
	DocsSources []string `yaml:"docs_sources,omitempty" validate:"omitempty,dive,url"`
}

// Config is the c7ctl project configuration
type Config struct {
	// APIKey authenticates against the Context7 API. Optional, the public
	// tier works without it.
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL overrides the Context7 API endpoint
	BaseURL string `yaml:"base_url,omitempty" validate:"omitempty,url"`

	// Libraries are the libraries whose documentation is kept fresh
	Libraries []Library `yaml:"libraries,omitempty" validate:"omitempty,dive"`

	// Keywords trigger automatic documentation enhancement when they appear
	// in a query
	Keywords []string `yaml:"keywords,omitempty"`

	// CacheTTL controls how long cached documentation stays fresh
	CacheTTL Duration `yaml:"cache_ttl,omitempty"`
}

// Duration unmarshals from YAML strings like "24h" or plain second counts
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(time.Duration(n) * time.Second)
	return nil
}

// DefaultKeywords are the auto-use triggers written by setup when the
// configuration does not provide its own list.
var DefaultKeywords = []string{
	"use context7",
	"latest documentation",
	"actual documentation",
	"api reference",
	"new methods",
	"api version",
}

// Load reads the configuration from the given path. An empty path searches
// the default locations; a missing file yields a usable zero configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultPath()
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, failure.Wrap(err, failure.Context{"path": path})
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, failure.New(ErrConfigParse,
					failure.Message("Configuration file is not valid YAML"),
					failure.Context{"path": path, "cause": err.Error()},
				)
			}
		}
	}

	cfg.applyEnv()

	if err := validate.Struct(cfg); err != nil {
		return nil, failure.New(ErrConfigInvalid,
			failure.Message("Configuration is invalid"),
			failure.Context{"path": path, "cause": err.Error()},
		)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = Duration(24 * time.Hour)
	}

	return cfg, nil
}

// defaultPath returns the first existing configuration file, or "" when none
func defaultPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "c7ctl", "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CONTEXT7_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("CONTEXT7_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("CONTEXT7_LIBRARIES"); v != "" {
		for _, name := range splitList(v) {
			if !lo.ContainsBy(c.Libraries, func(l Library) bool { return l.Name == name }) {
				c.Libraries = append(c.Libraries, Library{Name: name})
			}
		}
	}
	if v := os.Getenv("CONTEXT7_DOCS_SOURCES"); v != "" && len(c.Libraries) > 0 {
		// Sources given without a library attach to the first tracked one
		c.Libraries[0].DocsSources = append(c.Libraries[0].DocsSources, splitList(v)...)
	}
}

// LibraryNames returns the names of all tracked libraries
func (c *Config) LibraryNames() []string {
	return lo.Map(c.Libraries, func(l Library, _ int) string { return l.Name })
}

// EffectiveKeywords returns the configured keywords or the defaults
func (c *Config) EffectiveKeywords() []string {
	if len(c.Keywords) > 0 {
		return lo.Uniq(c.Keywords)
	}
	return DefaultKeywords
}

// ServerEnv builds the environment block for the Context7 MCP server entry
// written into the editor configuration
func (c *Config) ServerEnv() map[string]string {
	env := map[string]string{}
	if c.APIKey != "" {
		env["CONTEXT7_API_KEY"] = c.APIKey
	}
	if c.BaseURL != "" && c.BaseURL != DefaultBaseURL {
		env["CONTEXT7_BASE_URL"] = c.BaseURL
	}
	if names := c.LibraryNames(); len(names) > 0 {
		env["CONTEXT7_LIBRARIES"] = strings.Join(names, ",")
	}
	var sources []string
	for _, l := range c.Libraries {
		sources = append(sources, l.DocsSources...)
	}
	if len(sources) > 0 {
		env["CONTEXT7_DOCS_SOURCES"] = strings.Join(lo.Uniq(sources), ",")
	}
	return env
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
