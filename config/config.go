package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the runtime configuration for the PulsePlan API.
type Config struct {
	ServerHost string
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	JWTSecret string
}

// LoadConfig builds the configuration for the current environment. CI reads
// plain environment variables; everywhere else Docker secrets are the source
// of truth, with environment variables as a local-run fallback.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	switch env := GetEnvironment(); env {
	case CI:
		loadFromEnv(cfg)
	case Development, Test, Production:
		loadFromSecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromEnv populates cfg from environment variables only.
func loadFromEnv(cfg *Config) {
	for name, dst := range cfg.fields() {
		*dst = os.Getenv(strings.ToUpper(name))
	}
	cfg.RedisDB = parseRedisDB(os.Getenv("REDIS_DB"))
}

// loadFromSecrets populates cfg from Docker secrets, falling back to the
// matching environment variable when a secret file is absent so local runs
// work without a secrets directory.
func loadFromSecrets(cfg *Config) {
	for name, dst := range cfg.fields() {
		if value := readSecret(name); value != "" {
			*dst = value
			continue
		}
		*dst = os.Getenv(strings.ToUpper(name))
	}
	cfg.RedisDB = parseRedisDB(readSecret("redis_db"))
}

// fields maps secret names to their destination fields. Secret names are the
// lowercase form of the corresponding environment variable.
func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"server_host":    &c.ServerHost,
		"server_port":    &c.ServerPort,
		"db_host":        &c.DBHost,
		"db_port":        &c.DBPort,
		"db_user":        &c.DBUser,
		"db_password":    &c.DBPassword,
		"db_name":        &c.DBName,
		"db_ssl_mode":    &c.DBSSLMode,
		"redis_host":     &c.RedisHost,
		"redis_port":     &c.RedisPort,
		"redis_password": &c.RedisPassword,
		"redis_url":      &c.RedisURL,
		"jwt_secret":     &c.JWTSecret,
	}
}

func parseRedisDB(value string) int {
	if db, err := strconv.Atoi(value); err == nil {
		return db
	}
	return 0
}

// readSecret reads a Docker secret from the secrets directory.
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
