package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	SMTP     SMTPConfig
	Report   ReportConfig
}

// DatabaseConfig holds storage configuration. Driver selects the backing
// store: "postgres" (default) or "memory" for database-less local runs.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// SMTPConfig holds outgoing mail configuration. An empty Host disables
// delivery entirely; reports are then generated but not sent.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// ReportConfig holds the punctuality cutoffs, the two daily report trigger
// times, and where the reports go.
type ReportConfig struct {
	MorningCutoff    TimeOfDay
	AfternoonCutoff  TimeOfDay
	MorningTrigger   TimeOfDay
	AfternoonTrigger TimeOfDay
	Recipients       []string
	NotifyTimeout    time.Duration
}

// TimeOfDay is a wall-clock time without a date, e.g. a cutoff or a
// scheduled trigger time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q (want HH:MM): %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before reports whether t falls earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// On anchors the time of day to the calendar day of ref, in ref's location.
func (t TimeOfDay) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

func Load() (*Config, error) {
	// Missing .env is fine in deployed environments; configuration then
	// comes from the process environment.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", "postgres"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "staffsync_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
		FromName: getEnv("SMTP_FROM_NAME", "Attendance Reports"),
	}

	// Report configuration
	if config.Report, err = loadReportConfig(); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadReportConfig() (ReportConfig, error) {
	var (
		cfg ReportConfig
		err error
	)

	if cfg.MorningCutoff, err = ParseTimeOfDay(getEnv("REPORT_MORNING_CUTOFF", "06:15")); err != nil {
		return ReportConfig{}, fmt.Errorf("invalid REPORT_MORNING_CUTOFF: %w", err)
	}
	if cfg.AfternoonCutoff, err = ParseTimeOfDay(getEnv("REPORT_AFTERNOON_CUTOFF", "12:45")); err != nil {
		return ReportConfig{}, fmt.Errorf("invalid REPORT_AFTERNOON_CUTOFF: %w", err)
	}
	if cfg.MorningTrigger, err = ParseTimeOfDay(getEnv("REPORT_MORNING_TRIGGER", "06:20")); err != nil {
		return ReportConfig{}, fmt.Errorf("invalid REPORT_MORNING_TRIGGER: %w", err)
	}
	if cfg.AfternoonTrigger, err = ParseTimeOfDay(getEnv("REPORT_AFTERNOON_TRIGGER", "12:50")); err != nil {
		return ReportConfig{}, fmt.Errorf("invalid REPORT_AFTERNOON_TRIGGER: %w", err)
	}

	cfg.Recipients = getEnvSlice("REPORT_RECIPIENTS")

	timeout, err := time.ParseDuration(getEnv("REPORT_NOTIFY_TIMEOUT", "30s"))
	if err != nil {
		return ReportConfig{}, fmt.Errorf("invalid REPORT_NOTIFY_TIMEOUT: %w", err)
	}
	cfg.NotifyTimeout = timeout

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case "memory":
		// No connection settings needed.
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.Database.Driver)
	}
	if c.SMTP.Host != "" && c.SMTP.From == "" {
		return fmt.Errorf("SMTP_FROM is required when SMTP_HOST is set")
	}
	if c.Report.NotifyTimeout <= 0 {
		return fmt.Errorf("REPORT_NOTIFY_TIMEOUT must be positive")
	}

	// The schedule only makes sense in one order: morning cutoff, then
	// its report, then the afternoon pair.
	if !c.Report.MorningCutoff.Before(c.Report.AfternoonCutoff) {
		return fmt.Errorf("REPORT_MORNING_CUTOFF (%s) must be before REPORT_AFTERNOON_CUTOFF (%s)",
			c.Report.MorningCutoff, c.Report.AfternoonCutoff)
	}
	if c.Report.MorningTrigger.Before(c.Report.MorningCutoff) {
		return fmt.Errorf("REPORT_MORNING_TRIGGER (%s) must not be before REPORT_MORNING_CUTOFF (%s)",
			c.Report.MorningTrigger, c.Report.MorningCutoff)
	}
	if c.Report.AfternoonTrigger.Before(c.Report.AfternoonCutoff) {
		return fmt.Errorf("REPORT_AFTERNOON_TRIGGER (%s) must not be before REPORT_AFTERNOON_CUTOFF (%s)",
			c.Report.AfternoonTrigger, c.Report.AfternoonCutoff)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
