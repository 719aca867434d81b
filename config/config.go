package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RequiredEnv lists the variables without which the process must not start.
var RequiredEnv = []string{
	"PORT",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"AWS_REGION",
	"AWS_BUCKET_NAME",
	"APP_API_KEY",
}

type Config struct {
	Environment string
	Name        string
	Version     string
	HTTP        HTTPConfig
	S3          S3Config
	Auth        AuthConfig
	Log         LogConfig
	Metrics     MetricsConfig
}

type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	// PresignStorageKey signs the generated storage key instead of the original filename.
	PresignStorageKey bool
}

type AuthConfig struct {
	APIKey string
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type MetricsConfig struct {
	Enabled bool
}

// MissingEnvError reports every required variable that is absent or empty.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Vars, ", ")
}

func NewConfig() (*Config, error) {
	if missing := missingEnv(RequiredEnv); len(missing) > 0 {
		return nil, &MissingEnvError{Vars: missing}
	}

	httpReadTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	httpShutdownTimeout, err := getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Name:        getEnv("APP_NAME", "filegate"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		HTTP: HTTPConfig{
			Port:            os.Getenv("PORT"),
			ReadTimeout:     httpReadTimeout,
			WriteTimeout:    httpWriteTimeout,
			ShutdownTimeout: httpShutdownTimeout,
			AllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", "*"),
		},
		S3: S3Config{
			Endpoint:          getEnv("S3_ENDPOINT", "s3.amazonaws.com"),
			Region:            os.Getenv("AWS_REGION"),
			AccessKeyID:       os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Bucket:            os.Getenv("AWS_BUCKET_NAME"),
			UseSSL:            getEnvAsBool("S3_USE_SSL", true),
			PresignStorageKey: getEnvAsBool("PRESIGN_STORAGE_KEY", false),
		},
		Auth: AuthConfig{
			APIKey: os.Getenv("APP_API_KEY"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func missingEnv(keys []string) []string {
	var missing []string
	for _, key := range keys {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
