package domain

import (
	"time"
)

// Config represents the main application configuration
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Session     SessionConfig   `mapstructure:"session"`
	Clinic      ClinicContact   `mapstructure:"clinic"`
	Report      ReportConfig    `mapstructure:"report"`
	UI          UIConfig        `mapstructure:"ui"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Logging     LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SessionConfig controls the per-browser session store
type SessionConfig struct {
	CookieName   string        `mapstructure:"cookie_name"`
	TTL          time.Duration `mapstructure:"ttl"`          // idle time before a session ends
	MaxSessions  int           `mapstructure:"max_sessions"` // LRU capacity
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

// ReportConfig controls the downloadable report
type ReportConfig struct {
	FileName string `mapstructure:"file_name"`
}

// UIConfig holds presentational settings
type UIConfig struct {
	Title       string        `mapstructure:"title"`
	ResultDelay time.Duration `mapstructure:"result_delay"`
}

// RateLimitConfig throttles form submissions
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
