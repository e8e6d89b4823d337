package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
)

// DefaultAPIURL is the product collection endpoint of the public demo API.
const DefaultAPIURL = "https://upoad-image-db.vercel.app/api/product"

// Config holds runtime settings for the catalog CLI.
//
// Units: RequestTimeout and RefreshInterval are time.Duration values; zero
// disables them.
type Config struct {
	APIURL          string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration
	// CacheDSN locates the SQLite snapshot; empty disables the cache.
	CacheDSN     string
	LogLevel     string
	LogFile      string
	DateLayout   string
	MergeOnWrite bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = DefaultAPIURL
	c.RequestTimeout = 0
	c.RefreshInterval = 0
	c.CacheDSN = "catalog.db"
	c.LogLevel = "info"
	c.LogFile = ""
	c.DateLayout = models.DefaultDateLayout
	c.MergeOnWrite = false
}

// Load builds a Config from defaults, then the JSON file at jsonPath (if
// non-empty), then envFile and the process environment. Command-line flags
// are applied afterwards by ApplyFlags. Later sources take precedence.
func Load(jsonPath, envFile string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, jsonPath); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, envFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("config: api url is empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("config: negative request timeout %s", c.RequestTimeout)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("config: negative refresh interval %s", c.RefreshInterval)
	}
	return nil
}
