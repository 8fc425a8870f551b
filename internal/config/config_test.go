package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, SourceStatic, c.Data.Source)
	assert.Equal(t, 1200*time.Millisecond, c.Demographics.LoadingDelay)
	assert.Equal(t, ":8080", c.Addr())
	assert.False(t, c.Production())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "prices.json", `{"records":[]}`)
	path := writeFile(t, dir, "agri.yaml", `
server:
  port: 9090
  read_timeout: 5s
logging:
  level: debug
  format: text
data:
  source: file
  file_path: prices.json
demographics:
  loading_delay: 300ms
`)

	t.Setenv("AGRI_SERVER_PORT", "9191")
	t.Setenv("AGRI_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, c.Server.Port, "env wins over file")
	assert.Equal(t, 5*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, c.Server.WriteTimeout, "default kept")
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "text", c.Logging.Format)
	assert.Equal(t, filepath.Join(dir, "prices.json"), c.Data.FilePath)
	assert.Equal(t, 300*time.Millisecond, c.Demographics.LoadingDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORS.AllowedOrigins)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("AGRI_SERVER_PORT", "eighty")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default ok", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad env", func(c *Config) { c.Server.Env = "staging" }, "server.env"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"file without path", func(c *Config) { c.Data.Source = SourceFile }, "data.file_path"},
		{"remote without url", func(c *Config) { c.Data.Source = SourceRemote }, "data.remote_url"},
		{"unknown source", func(c *Config) { c.Data.Source = "ftp" }, "data.source"},
		{"rate limit zero", func(c *Config) { c.RateLimit.RPS = 0 }, "rate_limit"},
		{"rate limit off", func(c *Config) { c.RateLimit = RateLimitConfig{} }, ""},
		{"negative delay", func(c *Config) { c.Demographics.LoadingDelay = -time.Second }, "loading_delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateNil(t *testing.T) {
	var c *Config
	assert.Error(t, c.Validate())
}
