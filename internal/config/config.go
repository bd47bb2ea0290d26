package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"listmerge/internal/board"

	"gopkg.in/yaml.v3"
)

const DefaultEndpoint = "https://apis.ccbp.in/list-creation/lists"

// Config holds listmerge settings.
type Config struct {
	// Endpoint is the list-data URL (http, https, or file).
	Endpoint string `yaml:"endpoint"`
	// ItemsPath is a JSONPath expression selecting the item records in the response.
	ItemsPath string `yaml:"items_path"`
	// Timeout bounds one fetch; 0 disables it.
	Timeout time.Duration `yaml:"timeout"`

	Log     LogConfig     `yaml:"log"`
	Journal JournalConfig `yaml:"journal"`

	// Routes lists the allowed item moves between the lists of a merge session.
	Routes []board.Route `yaml:"routes"`

	// Theme is one of auto|light|dark.
	Theme string `yaml:"theme"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type JournalConfig struct {
	Path string `yaml:"path"`
}

func Default() *Config {
	return &Config{
		Endpoint:  DefaultEndpoint,
		ItemsPath: "$.lists",
		Log:       LogConfig{Level: "info"},
		Routes:    board.DefaultRoutes(),
		Theme:     "auto",
	}
}

// Dir returns the listmerge config directory under the user config dir.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "listmerge"), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path. With an empty path the default location is
// used and a missing file yields defaults; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults. An explicit empty routes list is kept empty.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from LISTMERGE_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv("LISTMERGE_ENDPOINT")); v != "" {
		c.Endpoint = v
	}
	if v := strings.TrimSpace(getenv("LISTMERGE_ITEMS_PATH")); v != "" {
		c.ItemsPath = v
	}
	if v := strings.TrimSpace(getenv("LISTMERGE_LOG_FILE")); v != "" {
		c.Log.File = v
	}
	if v := strings.TrimSpace(getenv("LISTMERGE_JOURNAL")); v != "" {
		c.Journal.Path = v
	}
	if v := strings.TrimSpace(getenv("LISTMERGE_THEME")); v != "" {
		c.Theme = v
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.Endpoint))
	if err != nil {
		return fmt.Errorf("config: endpoint: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("config: endpoint %q has no host", c.Endpoint)
		}
	case "file":
	default:
		return fmt.Errorf("config: endpoint %q must be an absolute http(s) or file URL", c.Endpoint)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative")
	}
	for i, r := range c.Routes {
		from, err := board.ParseRole(string(r.From))
		if err != nil {
			return fmt.Errorf("config: routes[%d].from: %w", i, err)
		}
		to, err := board.ParseRole(string(r.To))
		if err != nil {
			return fmt.Errorf("config: routes[%d].to: %w", i, err)
		}
		if from == to {
			return fmt.Errorf("config: routes[%d]: from and to are both %s", i, from)
		}
		c.Routes[i] = board.Route{From: from, To: to}
	}
	switch strings.ToLower(strings.TrimSpace(c.Theme)) {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("config: theme %q (want auto|light|dark)", c.Theme)
	}
	return nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
