package config

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophcatalog/internal/timex"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell absent keys apart from zero values so a partial file only overrides
// what it names. Durations use timex.Duration: "3s" or integer nanoseconds.
type JsonConfig struct {
	APIURL          *string         `json:"api_url"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	RefreshInterval *timex.Duration `json:"refresh_interval"`
	CacheDSN        *string         `json:"cache_dsn"`
	LogLevel        *string         `json:"log_level"`
	LogFile         *string         `json:"log_file"`
	DateLayout      *string         `json:"date_layout"`
	MergeOnWrite    *bool           `json:"merge_on_write"`
}

// parseJSON overlays cfg with the file at path. An empty path is a no-op; a
// missing or malformed file is an error.
func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	setString(&cfg.APIURL, jc.APIURL)
	setString(&cfg.CacheDSN, jc.CacheDSN)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.DateLayout, jc.DateLayout)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RefreshInterval != nil {
		cfg.RefreshInterval = jc.RefreshInterval.Duration
	}
	if jc.MergeOnWrite != nil {
		cfg.MergeOnWrite = *jc.MergeOnWrite
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
