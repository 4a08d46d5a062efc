package config

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports a single missing or invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredFields are the values the API cannot start without. Redis
// credentials are intentionally absent: an unreachable Redis degrades
// plan drafts and rate limiting but does not block startup.
func requiredFields(cfg *Config) map[string]string {
	return map[string]string{
		"server_port": cfg.ServerPort,
		"db_host":     cfg.DBHost,
		"db_port":     cfg.DBPort,
		"db_user":     cfg.DBUser,
		"db_password": cfg.DBPassword,
		"db_name":     cfg.DBName,
		"jwt_secret":  cfg.JWTSecret,
	}
}

// ValidateConfig checks that every required value is present, reporting all
// missing fields at once.
func ValidateConfig(cfg *Config) error {
	var errs []string
	for field, value := range requiredFields(cfg) {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"}.Error())
		}
	}
	if len(errs) == 0 {
		return nil
	}
	sort.Strings(errs)
	return fmt.Errorf("missing configuration:\n%s", strings.Join(errs, "\n"))
}
