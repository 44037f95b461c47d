package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// Переменные окружения, перекрывающие значения из файла
const (
	EnvConfigPath = "CONFIG_PATH"
	EnvDBDriver   = "DB_DRIVER"
	EnvDBHost     = "DB_HOST"
	EnvDBPassword = "DB_PASSWORD"
	EnvJWTSecret  = "JWT_SECRET"
	EnvHTTPPort   = "HTTP_PORT"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Booking   BookingConfig   `toml:"booking"`
	Catalog   CatalogConfig   `toml:"catalog"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Driver postgres или sqlite
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	// SQLitePath файл базы для драйвера sqlite; ":memory:" для временной базы
	SQLitePath string `toml:"sqlite_path"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
	Issuer          string `toml:"issuer"`
	// TrustUserHeader принимать X-User-ID от шлюза без токена
	TrustUserHeader bool `toml:"trust_user_header"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	// IdleTTLSeconds через сколько вытесняется лимитер клиента без запросов
	IdleTTLSeconds int `toml:"idle_ttl_seconds"`
	// TrustedProxies адреса и CIDR прокси, чьему X-Forwarded-For можно верить
	TrustedProxies []string `toml:"trusted_proxies"`
}

// IdleTTL срок хранения лимитера клиента без запросов
func (r RateLimitConfig) IdleTTL() time.Duration {
	return time.Duration(r.IdleTTLSeconds) * time.Second
}

type BookingConfig struct {
	// DurationMode "category" (стиральная/сушильная) или "fixed"
	DurationMode      string `toml:"duration_mode"`
	WasherMinutes     int    `toml:"washer_minutes"`
	DryerMinutes      int    `toml:"dryer_minutes"`
	FixedMinutes      int    `toml:"fixed_minutes"`
	GridMinutes       int    `toml:"grid_minutes"` // 0 = по режиму
	Timezone          string `toml:"timezone"`
	BlackoutStartHour int    `toml:"blackout_start_hour"`
	BlackoutEndHour   int    `toml:"blackout_end_hour"`
	HorizonDays       int    `toml:"horizon_days"`
	RejectPast        bool   `toml:"reject_past"`
	EnforceHorizon    bool   `toml:"enforce_horizon"`
}

type CatalogConfig struct {
	Path string `toml:"path"`
	// CacheTTLSeconds время жизни кеша устройств; 0 = без истечения
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
}

// Load читает .env (если есть), затем TOML файл и переменные окружения.
// CONFIG_PATH перекрывает path
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if p := os.Getenv(EnvConfigPath); p != "" {
		path = p
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
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
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			SQLitePath:      "laundry.db",
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "laundry-service",
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 60,
			Issuer:          "laundry-service",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
			IdleTTLSeconds:    600,
		},
		Booking: BookingConfig{
			DurationMode:      string(domain.DurationByCategory),
			WasherMinutes:     domain.DefaultWasherMinutes,
			DryerMinutes:      domain.DefaultDryerMinutes,
			FixedMinutes:      domain.DefaultFixedMinutes,
			Timezone:          "Local",
			BlackoutStartHour: domain.DefaultBlackoutStartHour,
			BlackoutEndHour:   domain.DefaultBlackoutEndHour,
			HorizonDays:       domain.DefaultHorizonDays,
			RejectPast:        true,
			EnforceHorizon:    true,
		},
		Catalog: CatalogConfig{
			Path:            "devices.yaml",
			CacheTTLSeconds: 300,
		},
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDBDriver); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv(EnvDBHost); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvHTTPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvHTTPPort, v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in range 1..65535", ErrInvalidConfig)
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("%w: database.sqlite_path is required for sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret (or %s) is required", ErrInvalidConfig, EnvJWTSecret)
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("%w: auth.token_ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 || c.RateLimit.IdleTTLSeconds <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}
	if _, err := c.BookingPolicy(); err != nil {
		return err
	}
	return nil
}

// DSN строка подключения PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// BookingPolicy собирает политику бронирования из секции [booking]
func (c *Config) BookingPolicy() (domain.BookingPolicy, error) {
	b := c.Booking

	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, b.Timezone, err)
	}

	policy := domain.BookingPolicy{
		Mode:              domain.DurationMode(b.DurationMode),
		WasherDuration:    time.Duration(b.WasherMinutes) * time.Minute,
		DryerDuration:     time.Duration(b.DryerMinutes) * time.Minute,
		FixedDuration:     time.Duration(b.FixedMinutes) * time.Minute,
		Grid:              time.Duration(b.GridMinutes) * time.Minute,
		BlackoutStartHour: b.BlackoutStartHour,
		BlackoutEndHour:   b.BlackoutEndHour,
		HorizonDays:       b.HorizonDays,
		Location:          loc,
		RejectPast:        b.RejectPast,
		EnforceHorizon:    b.EnforceHorizon,
	}
	if err := policy.Validate(); err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return policy, nil
}
