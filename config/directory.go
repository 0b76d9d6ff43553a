package config

import (
	"strings"
	"time"
)

const (
	defaultDirectoryBaseURL = "https://graph.microsoft.com/v1.0"
	maxDirectoryPages       = 20
)

// DirectoryConfig configures the Graph directory client.
type DirectoryConfig struct {
	BaseURL string        `env:"DIRECTORY_BASE_URL" envDefault:"https://graph.microsoft.com/v1.0"`
	Timeout time.Duration `env:"DIRECTORY_TIMEOUT"  envDefault:"30s"`

	// MaxPages caps how many @odata.nextLink pages are followed per lookup.
	MaxPages  int    `env:"DIRECTORY_MAX_PAGES"  envDefault:"1"`
	UserAgent string `env:"DIRECTORY_USER_AGENT" envDefault:"dirsearch"`
}

// Sanitize applies guardrails to directory client values.
func (c *DirectoryConfig) Sanitize() {
	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultDirectoryBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxPages < 1 {
		c.MaxPages = 1
	}
	if c.MaxPages > maxDirectoryPages {
		c.MaxPages = maxDirectoryPages
	}
}
