package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	t.Setenv("DB_USER", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mealbook", cfg.DBName)
	// Development fills safe defaults for missing secrets.
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
}

func TestLoadConfigSecretFiles(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	t.Setenv("JWT_SECRET", "")
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-file\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
}

func TestValidateConfigProduction(t *testing.T) {
	cfg := &Config{
		ServerPort: "8080",
		DBName:     "mealbook",
		MediaDir:   "media",
	}
	err := ValidateConfig(cfg, Production)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.DBUser = "app"
	cfg.DBPassword = "secret"
	cfg.JWTSecret = "prod-secret"
	assert.NoError(t, ValidateConfig(cfg, Production))
}

func TestValidateConfigRequiresMediaTarget(t *testing.T) {
	cfg := &Config{
		ServerPort: "8080",
		DBName:     "mealbook",
	}
	err := ValidateConfig(cfg, Development)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MEDIA_DIR")

	cfg.S3Bucket = "mealbook-media"
	assert.NoError(t, ValidateConfig(cfg, Development))
}

func TestDSNAndRedisAddr(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5432", DBUser: "app", DBPassword: "pw",
		DBName: "mealbook", DBSSLMode: "disable",
		RedisHost: "cache", RedisPort: "6379",
	}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=mealbook sslmode=disable", cfg.DSN())
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
}
