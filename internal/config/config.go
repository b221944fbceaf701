package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
const EnvPrefix = "TABLEBOOKING_"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Restaurant RestaurantConfig `toml:"restaurant"`
	Security   SecurityConfig   `toml:"security"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	QueryTimeout    int    `toml:"query_timeout"`     // секунды, дедлайн обращений к хранилищу
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RestaurantConfig struct {
	Timezone     string `toml:"timezone"`
	MaxPartySize int    `toml:"max_party_size"`
}

type SecurityConfig struct {
	NonceSecret     string `toml:"nonce_secret"`
	NonceTTLMinutes int    `toml:"nonce_ttl_minutes"`
	AdminAPIKey     string `toml:"admin_api_key"`
}

type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
}

// DSN строка подключения к Postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func (d DatabaseConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(d.QueryTimeout) * time.Second
}

// Location часовой пояс ресторана
func (r RestaurantConfig) Location() (*time.Location, error) {
	return time.LoadLocation(r.Timezone)
}

func (s SecurityConfig) NonceTTL() time.Duration {
	return time.Duration(s.NonceTTLMinutes) * time.Minute
}

// Load читает конфигурацию из toml-файла, затем применяет .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			QueryTimeout:    3,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "table-booking",
		},
		Restaurant: RestaurantConfig{
			Timezone:     "UTC",
			MaxPartySize: 12,
		},
		Security: SecurityConfig{NonceTTLMinutes: 30},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 60,
		},
	}
}

func (c *Config) applyEnv() error {
	strVars := map[string]*string{
		"DB_HOST":       &c.Database.Host,
		"DB_USER":       &c.Database.User,
		"DB_PASSWORD":   &c.Database.Password,
		"DB_NAME":       &c.Database.DBName,
		"DB_SSLMODE":    &c.Database.SSLMode,
		"LOG_LEVEL":     &c.Logs.Level,
		"TIMEZONE":      &c.Restaurant.Timezone,
		"NONCE_SECRET":  &c.Security.NonceSecret,
		"ADMIN_API_KEY": &c.Security.AdminAPIKey,
	}
	for name, dst := range strVars {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"HTTP_PORT": &c.Server.HTTPPort,
		"DB_PORT":   &c.Database.Port,
	}
	for name, dst := range intVars {
		v, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, EnvPrefix, name, v)
		}
		*dst = n
	}

	return nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("%w: database.query_timeout must be positive", ErrInvalidConfig)
	}
	if _, err := c.Restaurant.Location(); err != nil {
		return fmt.Errorf("%w: restaurant.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Restaurant.MaxPartySize < 1 {
		return fmt.Errorf("%w: restaurant.max_party_size must be at least 1", ErrInvalidConfig)
	}
	if c.Security.NonceSecret == "" {
		return fmt.Errorf("%w: security.nonce_secret is required", ErrInvalidConfig)
	}
	if c.Security.NonceTTLMinutes <= 0 {
		return fmt.Errorf("%w: security.nonce_ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Security.AdminAPIKey == "" {
		return fmt.Errorf("%w: security.admin_api_key is required", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("%w: rate_limit.requests_per_minute must be positive", ErrInvalidConfig)
	}
	return nil
}
