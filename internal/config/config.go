// Package config loads and validates the application configuration. All
// deployment-facing settings are environment variables; a yaml file can
// provide the same values for local development.
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Validation patterns for the Telegram credentials. These mirror the formats
// BotFather and my.telegram.org issue:
//   - API_ID is a plain number
//   - API_HASH is 32 lowercase hex characters
//   - BOT_TOKEN is the numeric bot ID, a colon, and the token body
var (
	apiIDPattern    = regexp.MustCompile(`^[0-9]+$`)
	apiHashPattern  = regexp.MustCompile(`^[a-f0-9]{32}$`)
	botTokenPattern = regexp.MustCompile(`^[0-9]+:[A-Za-z0-9_-]{30,}$`)
)

// Config represents the application configuration structure.
// It contains the Telegram credentials, the database connection, the health
// HTTP server, logging and error-reporting settings, and graceful shutdown
// behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Debug forces debug-level logging regardless of LogLevel
	Debug bool `env:"DEBUG" env-default:"false" yaml:"debug"`
	// LogLevel is the minimum severity to log (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" env-default:"info" yaml:"logLevel"`

	// ServiceName is the identifier reported by the health endpoint
	ServiceName string `env:"SERVICE_NAME" env-default:"dailymotion-telegram-bot" yaml:"serviceName"`

	// Telegram contains the credentials issued by the Telegram API platform and BotFather
	Telegram struct {
		// APIID is the numeric Telegram application ID (API_ID)
		APIID string `env:"API_ID" yaml:"apiId"`
		// APIHash is the 32 character hex Telegram application hash (API_HASH)
		APIHash string `env:"API_HASH" yaml:"apiHash"`
		// BotToken is the bot authentication token issued by BotFather (BOT_TOKEN)
		BotToken string `env:"BOT_TOKEN" yaml:"botToken"`
	} `yaml:"telegram"`

	// HTTP contains all health HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// HealthTimeout bounds the database check performed by the health endpoint
		HealthTimeout time.Duration `env:"HTTP_HEALTH_TIMEOUT" env-default:"5s" yaml:"healthTimeout"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// URL is the PostgreSQL connection URI (DATABASE_URL)
		URL string `env:"DATABASE_URL" yaml:"url"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
		// ConnectAttempts is how many times the initial connect is tried before giving up
		ConnectAttempts int `env:"DATABASE_CONNECT_ATTEMPTS" env-default:"3" yaml:"connectAttempts"`
	} `yaml:"database"`

	// Sentry contains error reporting configuration; reporting is disabled when DSN is empty
	Sentry struct {
		// DSN is the Sentry project DSN (SENTRY_DSN)
		DSN string `env:"SENTRY_DSN" yaml:"dsn"`
		// Release identifies the running release in Sentry events
		Release string `env:"SENTRY_RELEASE" yaml:"release"`
	} `yaml:"sentry"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for a yaml config file and returns a filled Config
// struct. When the file does not exist (the common case on env-only hosting
// platforms), configuration is read from the environment alone.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from env: %w", err)
		}
	}

	// hosting platforms inject PORT; it only applies when HTTP_ADDR is not set
	if cfg.HTTP.Addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.HTTP.Addr = ":" + port
		} else {
			cfg.HTTP.Addr = ":8000"
		}
	}

	return &cfg, nil
}

// LoggerLevel returns the effective log severity name: DEBUG=true wins over
// LOG_LEVEL.
func (c *Config) LoggerLevel() string {
	if c.Debug {
		return "debug"
	}

	return c.LogLevel
}

// ValidateDatabaseURL checks that the value is a parseable PostgreSQL
// connection URI.
func ValidateDatabaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL must use the postgres:// or postgresql:// scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("DATABASE_URL is missing a host")
	}

	return nil
}

// Validate checks the four required deployment variables against the formats
// their issuers use. It is called at startup before anything connects.
func (c *Config) Validate() error {
	if c.Telegram.APIID == "" {
		return fmt.Errorf("API_ID is not set")
	}
	if !apiIDPattern.MatchString(c.Telegram.APIID) {
		return fmt.Errorf("API_ID must be numeric, got %q", c.Telegram.APIID)
	}

	if c.Telegram.APIHash == "" {
		return fmt.Errorf("API_HASH is not set")
	}
	if !apiHashPattern.MatchString(c.Telegram.APIHash) {
		return fmt.Errorf("API_HASH must be 32 lowercase hex characters")
	}

	if c.Telegram.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is not set")
	}
	if !botTokenPattern.MatchString(c.Telegram.BotToken) {
		return fmt.Errorf("BOT_TOKEN must look like <bot id>:<token body>")
	}

	if err := ValidateDatabaseURL(c.Database.URL); err != nil {
		return err
	}

	return nil
}
