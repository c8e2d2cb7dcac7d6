// Package config loads the sitemetrics configuration: built-in
// defaults, then the optional YAML file, then environment overrides.
// Command-line flags are applied on top by the CLI layer.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/enikolados/sitemetrics/internal/core"
	"github.com/enikolados/sitemetrics/internal/render"
	"github.com/enikolados/sitemetrics/internal/scholar"
)

const (
	DefaultLightFile = "github-activity-light.svg"
	DefaultDarkFile  = "github-activity-dark.svg"
)

// Config is the top-level configuration, corresponding to
// .sitemetrics.yml.
type Config struct {
	Login     string `koanf:"login" yaml:"login"`
	OutDir    string `koanf:"out_dir" yaml:"out_dir"`
	Title     string `koanf:"title" yaml:"title"`
	Policy    string `koanf:"policy" yaml:"policy"`
	LightFile string `koanf:"light_file" yaml:"light_file"`
	DarkFile  string `koanf:"dark_file" yaml:"dark_file"`

	// Token is only ever read from the environment, never written to
	// the config file.
	Token string `koanf:"token" yaml:"-"`

	Scholar ScholarConfig `koanf:"scholar" yaml:"scholar"`

	// Themes overrides individual colors of the built-in "light" and
	// "dark" palettes.
	Themes map[string]render.Override `koanf:"themes" yaml:"themes,omitempty"`
}

// ScholarConfig configures the scholar command, including the
// hand-maintained fallback metrics.
type ScholarConfig struct {
	AuthorName string                 `koanf:"author" yaml:"author"`
	ScholarID  string                 `koanf:"id" yaml:"id"`
	Fallback   scholar.FallbackValues `koanf:"fallback" yaml:"fallback"`
}

func DefaultConfig() *Config {
	return &Config{
		OutDir:    "assets",
		Policy:    core.PolicyFixed,
		LightFile: DefaultLightFile,
		DarkFile:  DefaultDarkFile,
	}
}

// Load reads configuration from the given YAML file if it exists, then
// overlays SITEMETRICS_* environment variables and the well-known
// legacy variables (GITHUB_TOKEN/GH_TOKEN, LOGIN, OUT_DIR, SCHOLAR_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("SITEMETRICS_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "SITEMETRICS_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides maps the legacy environment variable names onto the
// config. GITHUB_TOKEN wins over GH_TOKEN.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.Token = v
	} else if v := os.Getenv("GH_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("LOGIN"); v != "" {
		c.Login = v
	}
	if v := os.Getenv("OUT_DIR"); v != "" {
		c.OutDir = v
	}
	if v := os.Getenv("SCHOLAR_AUTHOR"); v != "" {
		c.Scholar.AuthorName = v
	}
	if v := os.Getenv("SCHOLAR_ID"); v != "" {
		c.Scholar.ScholarID = v
	}
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Policy != core.PolicyFixed && c.Policy != core.PolicyQuantile {
		return fmt.Errorf("invalid policy %q: must be %q or %q", c.Policy, core.PolicyFixed, core.PolicyQuantile)
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir is required")
	}
	if c.LightFile == "" || c.DarkFile == "" {
		return fmt.Errorf("light_file and dark_file are required")
	}
	for name := range c.Themes {
		if name != "light" && name != "dark" {
			return fmt.Errorf("unknown theme %q: built-in themes are light and dark", name)
		}
	}
	return nil
}

// Theme returns the named built-in theme with any configured overrides
// applied.
func (c *Config) Theme(name string) (render.Theme, error) {
	var base render.Theme
	switch name {
	case "light":
		base = render.Light()
	case "dark":
		base = render.Dark()
	default:
		return render.Theme{}, fmt.Errorf("unknown theme %q", name)
	}

	o, ok := c.Themes[name]
	if !ok {
		return base, nil
	}
	return base.Merge(o)
}
