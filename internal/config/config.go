// Package config loads the ledger configuration from environment variables
// and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/ledger"
)

const (
	defaultLogLevel   = "info"
	defaultKafkaTopic = "ledger.transactions"
	defaultHTTPAddr   = ":8080"
)

// Config represents the application configuration.
type Config struct {
	LogLevel       string
	LogDevelopment bool
	Duplicates     ledger.DuplicatePolicy
	PostgresDSN    string
	Kafka          KafkaConfig
	HTTPAddr       string
}

// KafkaConfig configures the optional transaction event stream.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// Load reads the configuration. A .env file in the working directory is
// loaded when present; a custom path may be given instead, in which case it
// must exist. Variables already set in the environment take precedence.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	logDev, err := parseBoolEnv("LEDGER_LOG_DEVELOPMENT", false)
	if err != nil {
		return nil, err
	}

	duplicates, err := ledger.ParseDuplicatePolicy(os.Getenv("LEDGER_DUPLICATE_TX"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_DUPLICATE_TX: %w", err)
	}

	cfg := &Config{
		LogLevel:       getEnvOrDefault("LEDGER_LOG_LEVEL", defaultLogLevel),
		LogDevelopment: logDev,
		Duplicates:     duplicates,
		PostgresDSN:    strings.TrimSpace(os.Getenv("LEDGER_POSTGRES_DSN")),
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("LEDGER_KAFKA_BROKERS")),
			Topic:   getEnvOrDefault("LEDGER_KAFKA_TOPIC", defaultKafkaTopic),
		},
		HTTPAddr: getEnvOrDefault("LEDGER_HTTP_ADDR", defaultHTTPAddr),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be verified while parsing.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LEDGER_LOG_LEVEL: %q", c.LogLevel)
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		return fmt.Errorf("LEDGER_KAFKA_TOPIC is required when brokers are set")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
