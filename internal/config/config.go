package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. AGRI_SERVER_PORT.
const EnvPrefix = "AGRI"

// Source kinds for DataConfig.Source.
const (
	SourceStatic = "static"
	SourceFile   = "file"
	SourceRemote = "remote"
)

// Config is the service configuration. Values come from Default, then the
// optional YAML file, then AGRI_<SECTION>_<FIELD> environment variables.
type Config struct {
	Server       ServerConfig       `yaml:"server" envconfig:"SERVER"`
	CORS         CORSConfig         `yaml:"cors" envconfig:"CORS"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Logging      LoggingConfig      `yaml:"logging" envconfig:"LOGGING"`
	Data         DataConfig         `yaml:"data" envconfig:"DATA"`
	Demographics DemographicsConfig `yaml:"demographics" envconfig:"DEMOGRAPHICS"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" split_words:"true"`
	Env             string        `yaml:"env" split_words:"true"` // "development" or "production"
	StaticDir       string        `yaml:"static_dir" split_words:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `yaml:"write_timeout" split_words:"true"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" split_words:"true"`
}

// RateLimitConfig limits the endpoints that trigger work (refresh, reports).
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" split_words:"true"`
	RPS     float64 `yaml:"rps" split_words:"true"`
	Burst   int     `yaml:"burst" split_words:"true"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" split_words:"true"`   // debug, info, warn, error
	Format string `yaml:"format" split_words:"true"` // json or text
}

type DataConfig struct {
	Source    string        `yaml:"source" split_words:"true"`
	FilePath  string        `yaml:"file_path" split_words:"true"`
	RemoteURL string        `yaml:"remote_url" split_words:"true"`
	APIKey    string        `yaml:"api_key" split_words:"true"`
	CacheTTL  time.Duration `yaml:"cache_ttl" split_words:"true"`
}

type DemographicsConfig struct {
	LoadingDelay time.Duration `yaml:"loading_delay" split_words:"true"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			Env:             "development",
			StaticDir:       "./web/dist",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 2, Burst: 5},
		Logging:   LoggingConfig{Level: "info", Format: "json"},
		Data: DataConfig{
			Source:   SourceStatic,
			CacheTTL: 5 * time.Minute,
		},
		Demographics: DemographicsConfig{LoadingDelay: 1200 * time.Millisecond},
	}
}

// Load reads path (optional; "" skips the file), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		c.Data.FilePath = resolveRelative(path, c.Data.FilePath)
	}
	// fields without a matching variable keep their file or default value
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return &c, nil
}

// resolveRelative interprets p relative to the config file's directory when
// a file exists there, otherwise relative to the working directory.
func resolveRelative(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(filepath.Dir(configPath), p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if !slices.Contains([]string{"development", "production", "test"}, c.Server.Env) {
		errs = append(errs, fmt.Errorf("server.env %q must be development, production or test", c.Server.Env))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, fmt.Errorf("logging.level %q is not a level", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		errs = append(errs, fmt.Errorf("logging.format %q must be json or text", c.Logging.Format))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate_limit.rps and rate_limit.burst must be positive"))
	}
	if c.Demographics.LoadingDelay < 0 {
		errs = append(errs, errors.New("demographics.loading_delay must not be negative"))
	}

	switch c.Data.Source {
	case SourceStatic:
	case SourceFile:
		if c.Data.FilePath == "" {
			errs = append(errs, errors.New("data.file_path is required for the file source"))
		}
	case SourceRemote:
		if c.Data.RemoteURL == "" {
			errs = append(errs, errors.New("data.remote_url is required for the remote source"))
		}
	default:
		errs = append(errs, fmt.Errorf("data.source %q must be static, file or remote", c.Data.Source))
	}
	return errors.Join(errs...)
}

// Production reports whether the server runs in production mode.
func (c *Config) Production() bool {
	return c.Server.Env == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
