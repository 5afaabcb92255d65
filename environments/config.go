package environments

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/onurcolak/termii-gateway/pkg/logger"
	"github.com/onurcolak/termii-gateway/pkg/termii"
)

type Config struct {
	Server   ServerConfig
	Termii   TermiiConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Monitor  MonitorConfig
	Alert    AlertConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
}

type TermiiConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client returns the configuration the termii client is built from.
func (c TermiiConfig) Client() termii.Config {
	return termii.Config{
		BaseURL: c.BaseURL,
		APIKey:  c.APIKey,
	}
}

type AuthConfig struct {
	GatewayAPIKey string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MonitorConfig struct {
	Interval   time.Duration
	LowBalance float64
	AlertAfter int
	AutoStart  bool
}

type AlertConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

type LogConfig struct {
	Level string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment take precedence.
func Load() *Config {
	loadDotEnv()

	return &Config{
		Server: ServerConfig{
			Port: GetEnv("SERVER_PORT", "8080"),
		},
		Termii: TermiiConfig{
			BaseURL: GetEnv("TERMII_BASE_URL", termii.DefaultBaseURL),
			APIKey:  GetEnv("TERMII_API_KEY", ""),
			Timeout: time.Duration(GetEnvAsInt("TERMII_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Auth: AuthConfig{
			GatewayAPIKey: GetEnv("GATEWAY_API_KEY", ""),
		},
		Database: DatabaseConfig{
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "3306"),
			User:     GetEnv("DB_USER", "termii"),
			Password: GetEnv("DB_PASSWORD", "termii123"),
			DBName:   GetEnv("DB_NAME", "termii_gateway"),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt("REDIS_DB", 0),
		},
		Monitor: MonitorConfig{
			Interval:   time.Duration(GetEnvAsInt("MONITOR_INTERVAL_MINUTES", 15)) * time.Minute,
			LowBalance: GetEnvAsFloat("MONITOR_LOW_BALANCE", 1000),
			AlertAfter: GetEnvAsInt("MONITOR_ALERT_AFTER", 1),
			AutoStart:  GetEnvAsBool("MONITOR_AUTO_START", false),
		},
		Alert: AlertConfig{
			WebhookURL: GetEnv("ALERT_WEBHOOK_URL", ""),
			Timeout:    GetEnvAsDuration("ALERT_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level: GetEnv("LOG_LEVEL", "info"),
		},
	}
}

// loadDotEnv reads .env files into the environment. A missing file is not an
// error; a malformed one is logged and skipped.
func loadDotEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("Failed to load .env file: %v", err)
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
