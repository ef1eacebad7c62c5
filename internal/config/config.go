// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Database
	DBPath string

	// Session tokens
	JWTSecret string

	// Mail transport
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Cron
	EveningReminderAt string // HH:MM, local time of the process
	MorningReminderAt string

	// MonthlyReportInterval overrides the first-of-month schedule with a
	// fixed interval. Used for testing the report pipeline.
	MonthlyReportInterval time.Duration

	// SweepConcurrency bounds how many users a cron sweep works on at
	// the same time.
	SweepConcurrency int
}

func Load() *Config {
	return &Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("DB_PATH", "data/budget-buddy.db"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASS", ""),
		SMTPFrom:     getEnv("SMTP_EMAIL", ""),

		EveningReminderAt:     getEnv("EVENING_REMINDER_AT", "21:00"),
		MorningReminderAt:     getEnv("MORNING_REMINDER_AT", "09:00"),
		MonthlyReportInterval: getEnvDuration("MONTHLY_REPORT_INTERVAL", 0),

		SweepConcurrency: getEnvInt("SWEEP_CONCURRENCY", 4),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET must be set")
	}

	for _, at := range []string{c.EveningReminderAt, c.MorningReminderAt} {
		if _, err := time.Parse("15:04", at); err != nil {
			errs = append(errs, fmt.Sprintf("invalid reminder time '%s': must be HH:MM", at))
		}
	}

	if c.SweepConcurrency < 1 {
		errs = append(errs, "sweep concurrency must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// MailConfigured reports whether an outbound mail transport is set up.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
