package webclient

import "time"

// Config describes how to reach the analysis service.
type Config struct {
	// BaseURL is the scheme+host of the service, e.g. http://127.0.0.1:8000.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds a single request. Zero keeps the http.Client's own timeout.
	Timeout time.Duration `yaml:"timeout"`

	UserAgent string `yaml:"user_agent"`

	// Debug makes resty dump requests and responses to its logger.
	Debug bool `yaml:"debug"`
}

// DefaultConfig points at a service running next to the dashboard.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://127.0.0.1:8000",
		Timeout:   30 * time.Second,
		UserAgent: "repopulse",
	}
}
