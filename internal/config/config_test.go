package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "zmart_state", cfg.Storage.Key)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty addr":       func(c *Config) { c.HTTP.Addr = "" },
		"unknown driver":   func(c *Config) { c.Storage.Driver = "redis" },
		"file without dir": func(c *Config) { c.Storage.Dir = "" },
		"postgres no dsn":  func(c *Config) { c.Storage.Driver = DriverPostgres },
		"mongo no dsn":     func(c *Config) { c.Storage.Driver = DriverMongo },
		"empty key":        func(c *Config) { c.Storage.Key = "" },
		"nats no subject":  func(c *Config) { c.NATS.URL = "nats://localhost:4222"; c.NATS.Subject = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zmart.yaml")
	data := []byte(`
http:
  addr: ":8080"
storage:
  driver: memory
llm:
  model: test-model
  timeout: 2s
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.Equal(t, 2*time.Second, cfg.LLM.Timeout)
	// untouched fields keep defaults
	assert.Equal(t, "zmart_state", cfg.Storage.Key)
	assert.Equal(t, DefaultConfig().LLM.Endpoint, cfg.LLM.Endpoint)
}

func TestLoader_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zmart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: memory\n"), 0o644))

	env := map[string]string{
		"ZMART_ADDR":     ":7000",
		"GEMINI_API_KEY": "secret",
	}
	l := NewLoader(nil)
	l.getenv = func(k string) string { return env[k] }

	cfg, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoader_MissingExplicitFile(t *testing.T) {
	_, err := NewLoader(nil).Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoader_InvalidAfterEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zmart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	l := NewLoader(nil)
	l.getenv = func(k string) string {
		if k == "ZMART_STORAGE_DRIVER" {
			return "postgres"
		}
		return ""
	}
	_, err := l.Load(path)
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "DEBUG"
	assert.Equal(t, "DEBUG", cfg.SlogLevel().String())
	cfg.Log.Level = "bogus"
	assert.Equal(t, "INFO", cfg.SlogLevel().String())
}
