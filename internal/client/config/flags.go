package config

import (
	"github.com/urfave/cli/v3"
)

// Global flag names.
const (
	FlagConfig          = "config"
	FlagEnv             = "env"
	FlagAPIURL          = "api-url"
	FlagTimeout         = "timeout"
	FlagRefreshInterval = "refresh"
	FlagCache           = "cache"
	FlagLogLevel        = "log-level"
	FlagLogFile         = "log-file"
	FlagDateLayout      = "date-layout"
	FlagMergeOnWrite    = "merge-on-write"
)

// Flags returns the global flags understood by ApplyFlags. Defaults are left
// empty so that only flags given on the command line override earlier
// sources.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: FlagConfig, Aliases: []string{"c"}, Usage: "path to a JSON config file"},
		&cli.StringFlag{Name: FlagEnv, Usage: "path to a .env file", Value: ".env"},
		&cli.StringFlag{Name: FlagAPIURL, Aliases: []string{"a"}, Usage: "product collection endpoint"},
		&cli.DurationFlag{Name: FlagTimeout, Usage: "per-request timeout, 0 for none"},
		&cli.DurationFlag{Name: FlagRefreshInterval, Usage: "background refresh interval in the REPL, 0 to disable"},
		&cli.StringFlag{Name: FlagCache, Usage: "SQLite snapshot cache DSN, empty to disable"},
		&cli.StringFlag{Name: FlagLogLevel, Usage: "debug, info, warn or error"},
		&cli.StringFlag{Name: FlagLogFile, Usage: "write JSON logs to this file (rotated)"},
		&cli.StringFlag{Name: FlagDateLayout, Usage: "Go time layout for dates"},
		&cli.BoolFlag{Name: FlagMergeOnWrite, Usage: "merge written records instead of refetching"},
	}
}

// ApplyFlags overlays cfg with the flags explicitly set on cmd.
func (c *Config) ApplyFlags(cmd *cli.Command) {
	if cmd.IsSet(FlagAPIURL) {
		c.APIURL = cmd.String(FlagAPIURL)
	}
	if cmd.IsSet(FlagTimeout) {
		c.RequestTimeout = cmd.Duration(FlagTimeout)
	}
	if cmd.IsSet(FlagRefreshInterval) {
		c.RefreshInterval = cmd.Duration(FlagRefreshInterval)
	}
	if cmd.IsSet(FlagCache) {
		c.CacheDSN = cmd.String(FlagCache)
	}
	if cmd.IsSet(FlagLogLevel) {
		c.LogLevel = cmd.String(FlagLogLevel)
	}
	if cmd.IsSet(FlagLogFile) {
		c.LogFile = cmd.String(FlagLogFile)
	}
	if cmd.IsSet(FlagDateLayout) {
		c.DateLayout = cmd.String(FlagDateLayout)
	}
	if cmd.IsSet(FlagMergeOnWrite) {
		c.MergeOnWrite = cmd.Bool(FlagMergeOnWrite)
	}
}

// FromCommand loads the full configuration for cmd: defaults, the JSON file
// named by --config, the --env file and environment, then flags.
func FromCommand(cmd *cli.Command) (*Config, error) {
	cfg, err := Load(cmd.String(FlagConfig), cmd.String(FlagEnv))
	if err != nil {
		return nil, err
	}
	cfg.ApplyFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
