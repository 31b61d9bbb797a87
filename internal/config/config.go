package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	StudioAPI StudioAPIConfig `toml:"studio_api"`
	Wizard    WizardConfig    `toml:"wizard"`
	Database  DatabaseConfig  `toml:"database"`
	Cache     CacheConfig     `toml:"cache"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// StudioAPIConfig настройки REST API студии
type StudioAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// WizardConfig настройки мастера записи
type WizardConfig struct {
	TimeZone      string `toml:"time_zone"`
	IdleTTL       int    `toml:"idle_ttl"`       // секунды
	SweepInterval int    `toml:"sweep_interval"` // секунды
	MaxSessions   int    `toml:"max_sessions"`
}

// DatabaseConfig настройки Postgres для журнала операций
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	RetentionDays   int    `toml:"retention_days"`
}

// CacheConfig настройки Redis для справочников
type CacheConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
	TTL      int    `toml:"ttl"` // секунды
}

// RateLimitConfig ограничение запросов на клиента
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и проверяет ее
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
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
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "training_portal",
			Path:        "/metrics",
		},
		StudioAPI: StudioAPIConfig{
			Timeout: 10,
		},
		Wizard: WizardConfig{
			TimeZone:      "Local",
			IdleTTL:       1800,
			SweepInterval: 60,
			MaxSessions:   10000,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			RetentionDays:   90,
		},
		Cache: CacheConfig{
			Addr:   "localhost:6379",
			Prefix: "training_portal",
			TTL:    300,
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.StudioAPI.URL == "" {
		return fmt.Errorf("%w: studio_api.url is required", ErrInvalidConfig)
	}
	if u, err := url.Parse(c.StudioAPI.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: studio_api.url must be an absolute URL", ErrInvalidConfig)
	}
	if c.StudioAPI.Timeout <= 0 {
		return fmt.Errorf("%w: studio_api.timeout must be positive", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if _, err := c.Wizard.Location(); err != nil {
		return fmt.Errorf("%w: wizard.time_zone: %v", ErrInvalidConfig, err)
	}
	if c.Wizard.IdleTTL <= 0 || c.Wizard.SweepInterval <= 0 {
		return fmt.Errorf("%w: wizard.idle_ttl and wizard.sweep_interval must be positive", ErrInvalidConfig)
	}
	if c.Database.Enabled && (c.Database.Host == "" || c.Database.DBName == "") {
		return fmt.Errorf("%w: database.host and database.dbname are required when database is enabled", ErrInvalidConfig)
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("%w: cache.addr is required when cache is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс пользователя, в котором строится календарь
func (w WizardConfig) Location() (*time.Location, error) {
	if w.TimeZone == "" || w.TimeZone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(w.TimeZone)
}
