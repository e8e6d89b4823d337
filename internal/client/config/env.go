package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL          = "CATALOG_API_URL"
	EnvRequestTimeout  = "CATALOG_TIMEOUT"
	EnvRefreshInterval = "CATALOG_REFRESH_INTERVAL"
	EnvCacheDSN        = "CATALOG_CACHE"
	EnvLogLevel        = "CATALOG_LOG_LEVEL"
	EnvLogFile         = "CATALOG_LOG_FILE"
	EnvDateLayout      = "CATALOG_DATE_LAYOUT"
	EnvMergeOnWrite    = "CATALOG_MERGE_ON_WRITE"
)

// parseEnv overlays cfg with CATALOG_* variables. Values from envFile are
// used when the process environment does not set the same key. A missing
// envFile is ignored.
func parseEnv(cfg *Config, envFile string) error {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("env file %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	for key, dst := range map[string]*string{
		EnvAPIURL:     &cfg.APIURL,
		EnvCacheDSN:   &cfg.CacheDSN,
		EnvLogLevel:   &cfg.LogLevel,
		EnvLogFile:    &cfg.LogFile,
		EnvDateLayout: &cfg.DateLayout,
	} {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvRequestTimeout); ok {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvRefreshInterval); ok {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRefreshInterval, err)
		}
		cfg.RefreshInterval = d
	}
	if v, ok := lookup(EnvMergeOnWrite); ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMergeOnWrite, err)
		}
		cfg.MergeOnWrite = b
	}
	return nil
}
