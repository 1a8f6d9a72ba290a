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

// envFile необязательный файл с переменными окружения (секреты)
const envFile = ".env"

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Database        DatabaseConfig        `toml:"database"`
	ProviderService ProviderServiceConfig `toml:"provider_service"`
	Sessions        SessionsConfig        `toml:"sessions"`
	Scheduling      SchedulingConfig      `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// DatabaseConfig настройки журнала попыток записи в PostgreSQL
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// ProviderServiceConfig настройки клиента маркетплейса (провайдеры, доступность, записи)
type ProviderServiceConfig struct {
	URL       string  `toml:"url"`
	Timeout   int     `toml:"timeout"`
	RateLimit float64 `toml:"rate_limit"` // запросов в секунду, 0 отключает ограничение
	RateBurst int     `toml:"rate_burst"`
}

// SessionsConfig настройки сессий экрана записи (в секундах)
type SessionsConfig struct {
	IdleTTL       int `toml:"idle_ttl"`
	SweepInterval int `toml:"sweep_interval"`
}

type SchedulingConfig struct {
	Timezone              string `toml:"timezone"`
	RequestTimeout        int    `toml:"request_timeout"`
	CloseCalendarOnSelect bool   `toml:"close_calendar_on_select"`
}

// Load загружает конфигурацию из TOML файла и переменных окружения
func Load(path string) (*Config, error) {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv переопределяет значения из окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("PROVIDER_SERVICE_URL"); v != "" {
		c.ProviderService.URL = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_PORT %q: %w", v, err)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc_appointment_scheduler"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.ProviderService.Timeout == 0 {
		c.ProviderService.Timeout = 5
	}
	if c.ProviderService.RateLimit > 0 && c.ProviderService.RateBurst == 0 {
		c.ProviderService.RateBurst = 1
	}
	if c.Sessions.IdleTTL == 0 {
		c.Sessions.IdleTTL = 1800
	}
	if c.Sessions.SweepInterval == 0 {
		c.Sessions.SweepInterval = 60
	}
	if c.Scheduling.Timezone == "" {
		c.Scheduling.Timezone = "UTC"
	}
	if c.Scheduling.RequestTimeout == 0 {
		c.Scheduling.RequestTimeout = 10
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.ProviderService.URL == "" {
		return errors.New("provider_service.url is required")
	}
	if c.Sessions.IdleTTL < 0 {
		return errors.New("sessions.idle_ttl must not be negative")
	}
	if c.Sessions.SweepInterval < 0 {
		return errors.New("sessions.sweep_interval must not be negative")
	}
	if c.Scheduling.RequestTimeout < 0 {
		return errors.New("scheduling.request_timeout must not be negative")
	}
	if c.ProviderService.RateLimit < 0 {
		return errors.New("provider_service.rate_limit must not be negative")
	}
	if c.Database.Enabled && (c.Database.Host == "" || c.Database.DBName == "") {
		return errors.New("database.host and database.dbname are required when database is enabled")
	}
	if _, err := time.LoadLocation(c.Scheduling.Timezone); err != nil {
		return fmt.Errorf("invalid scheduling.timezone %q: %w", c.Scheduling.Timezone, err)
	}
	return nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс, в котором дата и час записи превращаются в момент времени
func (s SchedulingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
