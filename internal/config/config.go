package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config del servicio. Orden de carga: defaults → YAML (CONFIG_PATH) → env → Validate.
type Config struct {
	App struct {
		// dev | staging | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	JWKS struct {
		ClientID     string `yaml:"client_id"`
		ProviderURL  string `yaml:"provider_url"`
		CacheDir     string `yaml:"cache_dir"`
		FetchTimeout string `yaml:"fetch_timeout"`
		// file | redis
		Store string `yaml:"store"`
	} `yaml:"jwks"`

	Redis struct {
		Addr   string `yaml:"addr"`
		DB     int    `yaml:"db"`
		Prefix string `yaml:"prefix"`
	} `yaml:"redis"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`
}

const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Default devuelve la config base, antes de YAML y env.
func Default() *Config {
	var c Config
	c.App.Env = "dev"
	c.App.LogLevel = "info"
	c.Server.Addr = "0.0.0.0:8080"
	c.Server.CORSAllowedOrigins = []string{"*"}
	c.Server.ReadTimeout = "10s"
	c.Server.WriteTimeout = "30s"
	c.Server.ShutdownTimeout = "10s"
	c.JWKS.ProviderURL = "https://api.workos.com"
	c.JWKS.CacheDir = "."
	c.JWKS.FetchTimeout = "10s"
	c.JWKS.Store = StoreFile
	c.Redis.Addr = "localhost:6379"
	c.Redis.Prefix = "jwks:"
	c.Metrics.Enabled = true
	return &c
}

// LoadDotEnv carga .env si existe. Un archivo ausente no es error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	present := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// Load arma la config completa. path vacío omite el YAML.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	c.applyEnvOverrides()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// FromEnv es Load con el path tomado de CONFIG_PATH.
func FromEnv() (*Config, error) {
	return Load(strings.TrimSpace(os.Getenv("CONFIG_PATH")))
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = v
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	// JWKS
	if v, ok := getEnvStr("JWKS_CLIENT_ID"); ok {
		c.JWKS.ClientID = strings.TrimSpace(v)
	}
	if v, ok := getEnvStr("JWKS_PROVIDER_URL"); ok {
		c.JWKS.ProviderURL = strings.TrimRight(v, "/")
	}
	if v, ok := getEnvStr("JWKS_CACHE_DIR"); ok {
		c.JWKS.CacheDir = v
	}
	if v, ok := getEnvStr("JWKS_FETCH_TIMEOUT"); ok {
		c.JWKS.FetchTimeout = v
	}
	if v, ok := getEnvStr("JWKS_STORE"); ok {
		c.JWKS.Store = strings.ToLower(v)
	}

	// REDIS
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Redis.Prefix = v
	}

	// METRICS
	if v, ok := getEnvBool("METRICS_ENABLED"); ok {
		c.Metrics.Enabled = v
	}
}

// ErrMissingClientID: sin JWKS_CLIENT_ID no hay documento que buscar.
var ErrMissingClientID = errors.New("JWKS_CLIENT_ID must be set")

// Validate revisa lo que tiene que estar bien antes de arrancar.
func (c *Config) Validate() error {
	if c.JWKS.ClientID == "" {
		return ErrMissingClientID
	}
	if strings.ContainsAny(c.JWKS.ClientID, `/\`) {
		return fmt.Errorf("JWKS_CLIENT_ID %q: must not contain path separators", c.JWKS.ClientID)
	}
	switch c.JWKS.Store {
	case StoreFile, StoreRedis:
	default:
		return fmt.Errorf("JWKS_STORE %q: want %q or %q", c.JWKS.Store, StoreFile, StoreRedis)
	}
	if c.JWKS.ProviderURL == "" {
		return errors.New("JWKS_PROVIDER_URL must not be empty")
	}
	for key, v := range map[string]string{
		"JWKS_FETCH_TIMEOUT":      c.JWKS.FetchTimeout,
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s %q: %w", key, v, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s %q: must be positive", key, v)
		}
	}
	return nil
}

// FetchTimeout ya validado; 10s si algo raro pasó.
func (c *Config) FetchTimeout() time.Duration { return durOr(c.JWKS.FetchTimeout, 10*time.Second) }

func (c *Config) ReadTimeout() time.Duration { return durOr(c.Server.ReadTimeout, 10*time.Second) }

func (c *Config) WriteTimeout() time.Duration { return durOr(c.Server.WriteTimeout, 30*time.Second) }

func (c *Config) ShutdownTimeout() time.Duration {
	return durOr(c.Server.ShutdownTimeout, 10*time.Second)
}

func durOr(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil && d > 0 {
		return d
	}
	return def
}
