package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, DefaultAPIURL, c.APIURL)
	assert.Equal(t, time.Duration(0), c.RequestTimeout)
	assert.Equal(t, "catalog.db", c.CacheDSN)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "02/01/2006", c.DateLayout)
	assert.False(t, c.MergeOnWrite)
	require.NoError(t, c.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load("", filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestValidate(t *testing.T) {
	c := defaults()
	c.APIURL = ""
	assert.Error(t, c.Validate())

	c = defaults()
	c.RequestTimeout = -time.Second
	assert.Error(t, c.Validate())

	c = defaults()
	c.RefreshInterval = -time.Second
	assert.Error(t, c.Validate())
}

func TestFromCommand_Precedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"api_url":         "http://json/product",
		"request_timeout": "5s",
		"log_level":       "warn",
		"cache_dsn":       "json.db",
	})
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("CATALOG_LOG_LEVEL=debug\nCATALOG_CACHE=env.db\n"), 0o600))

	var got *Config
	cmd := &cli.Command{
		Name:  "catalog",
		Flags: Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var err error
			got, err = FromCommand(cmd)
			return err
		},
	}
	require.NoError(t, cmd.Run(context.Background(), []string{
		"catalog", "-c", jsonPath, "--env", envPath, "--cache=", "--timeout", "2s",
	}))

	require.NotNil(t, got)
	assert.Equal(t, "http://json/product", got.APIURL, "json overrides defaults")
	assert.Equal(t, "debug", got.LogLevel, "env file overrides json")
	assert.Equal(t, "", got.CacheDSN, "flag overrides env")
	assert.Equal(t, 2*time.Second, got.RequestTimeout, "flag overrides json")
	assert.Equal(t, "02/01/2006", got.DateLayout, "untouched keys keep defaults")
}

func TestApplyFlags_OnlyExplicit(t *testing.T) {
	cfg := defaults()
	cfg.LogLevel = "warn"

	cmd := &cli.Command{
		Name:  "catalog",
		Flags: Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg.ApplyFlags(cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), []string{"catalog", "-a", "http://flag/p", "--merge-on-write", "--refresh", "30s"}))

	assert.Equal(t, "http://flag/p", cfg.APIURL)
	assert.True(t, cfg.MergeOnWrite)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestFromCommand_InvalidConfig(t *testing.T) {
	cmd := &cli.Command{
		Name:  "catalog",
		Flags: Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := FromCommand(cmd)
			return err
		},
	}
	err := cmd.Run(context.Background(), []string{"catalog", "--api-url=", "--env", filepath.Join(t.TempDir(), "none.env")})
	require.Error(t, err)
}
