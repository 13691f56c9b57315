package config

import (
	"os"
	"strconv"
	"time"
)

// Supported storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration values
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Seed     SeedConfig
	Metrics  MetricsConfig
}

// AppConfig holds process-level settings
type AppConfig struct {
	Env string
}

// DatabaseConfig holds the seed target. Path is used by the sqlite driver,
// the remaining fields by postgres.
type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the postgres connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// Target describes where rows are written, for logs and the confirmation line.
func (c DatabaseConfig) Target() string {
	if c.Driver == DriverPostgres {
		return c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName
	}
	return c.Path
}

// SeedConfig holds the record source. An empty DataFile selects the embedded data set.
type SeedConfig struct {
	DataFile string
	Timeout  time.Duration
}

// MetricsConfig holds the optional Pushgateway target
type MetricsConfig struct {
	PushgatewayURL string
	JobName        string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		App: AppConfig{
			Env: getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", DriverSQLite),
			Path:     getEnv("DB_PATH", "projects.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "projects"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Seed: SeedConfig{
			DataFile: getEnv("SEED_DATA_FILE", ""),
			Timeout:  getEnvAsDuration("SEED_TIMEOUT", 30*time.Second),
		},
		Metrics: MetricsConfig{
			PushgatewayURL: getEnv("PUSHGATEWAY_URL", ""),
			JobName:        getEnv("PUSHGATEWAY_JOB", "team_members_seed"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
