package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the optional configuration file, looked up
// in the current working directory. A missing file is not an error.
const ConfigFile = "configuration.yaml"

type Config struct {
	AppPort  int            `yaml:"app_port"`
	Database DatabaseConfig `yaml:"database"`

	// KafkaBrokers is a comma-separated broker list. Empty disables
	// event publishing entirely.
	KafkaBrokers string `yaml:"kafka_brokers"`
	// OTLPEndpoint is the OTLP/HTTP collector address. Empty disables
	// trace export.
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	DatabaseName string `yaml:"database_name"`
}

func Defaults() *Config {
	return &Config{
		AppPort: 8000,
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			Username:     "postgres",
			Password:     "password",
			DatabaseName: "cms",
		},
	}
}

// Load returns the application configuration: built-in defaults, overlaid
// by configuration.yaml from the working directory if present, then by
// environment variables.
func Load() (*Config, error) {
	return loadFrom(ConfigFile)
}

func loadFrom(path string) (*Config, error) {
	cfg := Defaults()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fine, keep defaults
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.AppPort = atoiDef(os.Getenv("APP_PORT"), cfg.AppPort)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = atoiDef(os.Getenv("DB_PORT"), cfg.Database.Port)
	cfg.Database.Username = getEnv("DB_USER", cfg.Database.Username)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DatabaseName = getEnv("DB_NAME", cfg.Database.DatabaseName)
	cfg.KafkaBrokers = getEnv("KAFKA_BOOTSTRAP_SERVERS", cfg.KafkaBrokers)
	cfg.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)

	return cfg, nil
}

// URL returns the connection URI for the configured logical database.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		d.Username, d.Password, d.Host, d.Port, d.DatabaseName)
}

// URLWithoutDB returns the connection URI without the logical database
// part. Used to reach the cluster when creating databases.
func (d DatabaseConfig) URLWithoutDB() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d",
		d.Username, d.Password, d.Host, d.Port)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func atoiDef(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
