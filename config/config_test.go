package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[App]
Port = 9090

[Database]
URL = "postgres://blog:secret@db:5432/blogicum?sslmode=disable"
PoolSize = 12
MaxConnAge = "1m"
SlowQuery = "50ms"

[Blog]
PageSize = 5
SessionTTL = "24h"
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.App.Host)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "media", cfg.App.MediaDir)
	assert.Equal(t, 50*time.Millisecond, cfg.Database.SlowQuery.Duration)
	assert.Equal(t, 5, cfg.Blog.PageSize)
	assert.Equal(t, 24*time.Hour, cfg.Blog.SessionTTL.Duration)

	opt, err := cfg.Database.Options()
	require.NoError(t, err)
	assert.Equal(t, "db:5432", opt.Addr)
	assert.Equal(t, "blog", opt.User)
	assert.Equal(t, "blogicum", opt.Database)
	assert.Equal(t, 12, opt.PoolSize)
	assert.Equal(t, 3, opt.MaxRetries)
	assert.Equal(t, time.Minute, opt.MaxConnAge)
}

func TestLoad_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Blog]\nSessionTTL = \"soon\"\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDatabase_Options_BadURL(t *testing.T) {
	_, err := Database{URL: "mysql://nope"}.Options()
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowQuery.Duration)
	assert.False(t, cfg.Database.LogQueries)
}
