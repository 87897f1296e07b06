/*
Package config loads server settings from the environment.

SOURCES (later wins):
  1. Built-in defaults
  2. .env file (-env path must exist; ./.env is optional)
  3. Process environment
  4. Command-line flags applied by cmd/server

VARIABLES:
  LEAVE_HTTP_PORT              HTTP port (default 8080)
  LEAVE_LOG_LEVEL              debug|info|warn|error (default info)
  LEAVE_CORS_ORIGINS           Comma separated origins (default http://localhost:5173)
  LEAVE_LOW_BALANCE_THRESHOLD  Remaining days below which an account is reported (default 5)
  LEAVE_REPORT_CRON            Cron spec for the low-balance report (default "0 8 * * 1", empty disables)
  LEAVE_MAX_CONSECUTIVE_DAYS   Longest single record accepted (default 0 = no limit)
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/warp/leave-tracker/logger"
)

// Config is the full server configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Leave  LeaveConfig
	Report ReportConfig
}

// ServerConfig holds HTTP options.
type ServerConfig struct {
	Port        int
	CORSOrigins []string
}

type LogConfig struct {
	Level string
}

// LeaveConfig holds the eligibility knobs applied by the directory.
type LeaveConfig struct {
	MaxConsecutiveDays int
}

// ReportConfig drives the scheduled low-balance report.
type ReportConfig struct {
	LowBalanceThreshold int
	Cron                string
}

// Load reads envFile and the environment, then validates the result.
// A named envFile must exist; with an empty envFile ./.env is read when
// present.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed loading .env: %w", err)
	}

	cfg := Default()
	var err error

	if cfg.Server.Port, err = intFromEnv("LEAVE_HTTP_PORT", cfg.Server.Port); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv("LEAVE_CORS_ORIGINS"); ok {
		cfg.Server.CORSOrigins = splitList(v)
	}
	cfg.Log.Level = getenvWithDefault("LEAVE_LOG_LEVEL", cfg.Log.Level)
	if cfg.Report.LowBalanceThreshold, err = intFromEnv("LEAVE_LOW_BALANCE_THRESHOLD", cfg.Report.LowBalanceThreshold); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv("LEAVE_REPORT_CRON"); ok {
		cfg.Report.Cron = strings.TrimSpace(v)
	}
	if cfg.Leave.MaxConsecutiveDays, err = intFromEnv("LEAVE_MAX_CONSECUTIVE_DAYS", cfg.Leave.MaxConsecutiveDays); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"http://localhost:5173"},
		},
		Log: LogConfig{Level: "info"},
		Report: ReportConfig{
			LowBalanceThreshold: 5,
			Cron:                "0 8 * * 1",
		},
	}
}

// Validate checks ranges and the log level.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("LEAVE_HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("LEAVE_LOG_LEVEL: %w", err)
	}
	if c.Report.LowBalanceThreshold < 0 {
		return fmt.Errorf("LEAVE_LOW_BALANCE_THRESHOLD cannot be negative, got %d", c.Report.LowBalanceThreshold)
	}
	if c.Leave.MaxConsecutiveDays < 0 {
		return fmt.Errorf("LEAVE_MAX_CONSECUTIVE_DAYS cannot be negative, got %d", c.Leave.MaxConsecutiveDays)
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intFromEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
