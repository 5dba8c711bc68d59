// Package config loads service configuration.
//
// Values are layered: built-in defaults, then an optional YAML file named
// by --config or TASKBOARD_CONFIG, then environment variables, then the
// remaining command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Workers   WorkersConfig   `yaml:"workers"`
	Log       LogConfig       `yaml:"log"`
	Ownership OwnershipConfig `yaml:"ownership"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Debug           bool          `yaml:"debug"`
	// Swagger mounts the API docs under /swagger/*.
	Swagger bool `yaml:"swagger"`
}

type StoreConfig struct {
	// Driver is "postgres" or "memory".
	Driver      string `yaml:"driver"`
	DatabaseURL string `yaml:"database_url"`
	// MigrateDown rolls every migration back and exits. Flag only.
	MigrateDown bool `yaml:"-"`
}

// RedisConfig enables the board list cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	// FreshIdentity re-reads the user record when writing comment authors
	// instead of trusting the token claims.
	FreshIdentity bool         `yaml:"fresh_identity"`
	Cookie        CookieConfig `yaml:"cookie"`
}

type CookieConfig struct {
	Name   string `yaml:"name"`
	Domain string `yaml:"domain"`
	Secure bool   `yaml:"secure"`
	// SameSite is one of "none", "lax", "strict".
	SameSite string `yaml:"same_site"`
}

type WorkersConfig struct {
	Count int `yaml:"count"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type OwnershipConfig struct {
	EnforceBoardUpdate bool `yaml:"enforce_board_update"`
	EnforceHierarchy   bool `yaml:"enforce_hierarchy"`
}

// Default returns the configuration used before any file or override.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			Swagger:         true,
		},
		Store: StoreConfig{Driver: DriverPostgres},
		Redis: RedisConfig{CacheTTL: 5 * time.Minute},
		Auth: AuthConfig{
			TokenTTL: time.Hour,
			Cookie: CookieConfig{
				Name:     "token",
				Secure:   true,
				SameSite: "none",
			},
		},
		Workers:   WorkersConfig{Count: 4},
		Log:       LogConfig{Level: "info", Format: "text"},
		Ownership: OwnershipConfig{EnforceBoardUpdate: true},
	}
}

// Load builds the configuration from args (without the program name).
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("taskboard", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "path to YAML config file")
	addr := fs.String("addr", "", "listen address, overrides server.addr")
	logLevel := fs.String("log-level", "", "log level, overrides log.level")
	migrateDown := fs.Bool("migrate-down", false, "roll back every migration and exit")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	cfg := Default()
	if *path == "" {
		*path = os.Getenv("TASKBOARD_CONFIG")
	}
	if *path != "" {
		if err := cfg.loadFile(*path); err != nil {
			return nil, fmt.Errorf("Load: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	cfg.Store.MigrateDown = *migrateDown
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Store.DatabaseURL, "DATABASE_URL")
	setString(&c.Store.Driver, "STORE_DRIVER")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Server.Addr, "LISTEN_ADDR")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v, ok := os.LookupEnv("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Redis.DB = n
	}
	if v, ok := os.LookupEnv("WORKER_COUNT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WORKER_COUNT: %w", err)
		}
		c.Workers.Count = n
	}
	if v, ok := os.LookupEnv("TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		c.Auth.TokenTTL = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate reports every setting the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret (JWT_SECRET) is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Workers.Count <= 0 {
		errs = append(errs, errors.New("workers.count must be positive"))
	}
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("store.database_url (DATABASE_URL) is required for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("store.driver %q is not one of postgres, memory", c.Store.Driver))
	}
	// 瀏覽器會丟棄沒有 Secure 的 SameSite=None cookie
	if mode, err := c.Auth.Cookie.SameSiteMode(); err != nil {
		errs = append(errs, err)
	} else if mode == http.SameSiteNoneMode && !c.Auth.Cookie.Secure {
		errs = append(errs, errors.New("auth.cookie.same_site none requires auth.cookie.secure"))
	}
	if c.Auth.Cookie.Name == "" {
		errs = append(errs, errors.New("auth.cookie.name must not be empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SameSiteMode converts the configured value for http.Cookie.
func (c CookieConfig) SameSiteMode() (http.SameSite, error) {
	switch strings.ToLower(c.SameSite) {
	case "", "none":
		return http.SameSiteNoneMode, nil
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	default:
		return 0, fmt.Errorf("auth.cookie.same_site %q is not one of none, lax, strict", c.SameSite)
	}
}
