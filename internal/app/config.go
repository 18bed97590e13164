package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/raysh454/repopulse/internal/server"
	"github.com/raysh454/repopulse/internal/webclient"
)

// EnvAPIURL overrides WebClient.BaseURL when set.
const EnvAPIURL = "REPOPULSE_API_URL"

// Config contains the runtime configuration shared by the CLI and the
// dashboard. Zero fields in a YAML file keep their defaults.
type Config struct {
	Server server.Config `yaml:"server"`

	// WebClient describes how to reach the analysis service.
	WebClient webclient.Config `yaml:"webclient"`

	// Locale is a BCP 47 tag used for chart date labels, e.g. "en-GB".
	Locale string `yaml:"locale"`

	// TimeZone is an IANA zone name used for chart date labels.
	TimeZone string `yaml:"time_zone"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() *Config {
	return &Config{
		Server:    server.DefaultConfig(),
		WebClient: webclient.DefaultConfig(),
		Locale:    "en-US",
		TimeZone:  "UTC",
		LogLevel:  "info",
	}
}

// LoadConfig reads the YAML file at path over the defaults and then applies
// environment overrides. An empty path only applies the overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.WebClient.BaseURL = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if _, err := webclient.NormalizeBaseURL(c.WebClient.BaseURL); err != nil {
		return fmt.Errorf("webclient.base_url: %w", err)
	}
	if c.WebClient.Timeout < 0 {
		return fmt.Errorf("webclient.timeout must not be negative")
	}
	if _, err := c.LocaleTag(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// LocaleTag parses Locale. An empty Locale means en-US.
func (c *Config) LocaleTag() (language.Tag, error) {
	if strings.TrimSpace(c.Locale) == "" {
		return language.AmericanEnglish, nil
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

// Location loads TimeZone. An empty TimeZone means UTC.
func (c *Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.TimeZone) == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
