package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. CI is detected
// automatically, everything else comes from the ENV variable.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Media storage: S3 bucket when set, local MediaDir otherwise
	S3Bucket  string
	AWSRegion string
	MediaDir  string

	// SMTP configuration for the welcome email (optional)
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
}

// LoadConfig builds a Config from environment variables and Docker secrets,
// then validates it for the current environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "mealbook"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),
		RedisHost:  getEnv("REDIS_HOST", "localhost"),
		RedisPort:  getEnv("REDIS_PORT", "6379"),
		RedisURL:   os.Getenv("REDIS_URL"),
		S3Bucket:   os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:  os.Getenv("AWS_REGION"),
		MediaDir:   getEnv("MEDIA_DIR", "media"),
	}

	// Secrets may come from the environment directly or from Docker
	// secret files, environment wins.
	cfg.DBUser = getSecret("DB_USER", "db_user")
	cfg.DBPassword = getSecret("DB_PASSWORD", "db_password")
	cfg.JWTSecret = getSecret("JWT_SECRET", "jwt_secret")
	cfg.RedisPassword = getSecret("REDIS_PASSWORD", "redis_password")
	cfg.SMTPHost = getSecret("SMTP_HOST", "smtp_host")
	cfg.SMTPPort = getSecret("SMTP_PORT", "smtp_port")
	cfg.SMTPUsername = getSecret("SMTP_USERNAME", "smtp_username")
	cfg.SMTPPassword = getSecret("SMTP_PASSWORD", "smtp_password")
	cfg.EmailFrom = getSecret("EMAIL_FROM", "email_from")

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", v, err)
		}
		cfg.RedisDB = n
	}

	if err := ValidateConfig(cfg, env); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisAddr returns the host:port address of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getSecret reads a value from the environment, falling back to a Docker
// secret file under SECRETS_DIR (default /run/secrets).
func getSecret(envKey, secretName string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, secretName)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
