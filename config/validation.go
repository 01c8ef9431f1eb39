package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that everything the current environment needs is
// present. Development and test fill in safe defaults instead of failing.
func ValidateConfig(cfg *Config, env Environment) error {
	var errs []string

	switch env {
	case Production, CI:
		if cfg.DBUser == "" {
			errs = append(errs, ValidationError{"DB_USER", "required"}.Error())
		}
		if cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "required"}.Error())
		}
		if cfg.JWTSecret == "" {
			errs = append(errs, ValidationError{"JWT_SECRET", "required"}.Error())
		}
	case Development, Test:
		if cfg.DBUser == "" {
			cfg.DBUser = "postgres"
		}
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = "dev-secret"
		}
	}

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "required"}.Error())
	}
	if cfg.DBName == "" {
		errs = append(errs, ValidationError{"DB_NAME", "required"}.Error())
	}
	if cfg.S3Bucket == "" && cfg.MediaDir == "" {
		errs = append(errs, ValidationError{"MEDIA_DIR", "required when S3_BUCKET_NAME is unset"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
