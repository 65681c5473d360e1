package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LEDGER_LOG_LEVEL",
		"LEDGER_LOG_DEVELOPMENT",
		"LEDGER_DUPLICATE_TX",
		"LEDGER_POSTGRES_DSN",
		"LEDGER_KAFKA_BROKERS",
		"LEDGER_KAFKA_TOPIC",
		"LEDGER_HTTP_ADDR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogDevelopment)
	assert.Equal(t, ledger.DuplicateReject, cfg.Duplicates)
	assert.Empty(t, cfg.PostgresDSN)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "ledger.transactions", cfg.Kafka.Topic)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEDGER_LOG_LEVEL", "debug")
	t.Setenv("LEDGER_LOG_DEVELOPMENT", "true")
	t.Setenv("LEDGER_DUPLICATE_TX", "credit")
	t.Setenv("LEDGER_POSTGRES_DSN", " postgres://localhost/ledger ")
	t.Setenv("LEDGER_KAFKA_BROKERS", "a:9092, b:9092,,")
	t.Setenv("LEDGER_KAFKA_TOPIC", "audit")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogDevelopment)
	assert.Equal(t, ledger.DuplicateCreditUntracked, cfg.Duplicates)
	assert.Equal(t, "postgres://localhost/ledger", cfg.PostgresDSN)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "audit", cfg.Kafka.Topic)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "ledger.env")
	require.NoError(t, os.WriteFile(path, []byte("LEDGER_HTTP_ADDR=:9090\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string][2]string{
		"log level":   {"LEDGER_LOG_LEVEL", "loud"},
		"development": {"LEDGER_LOG_DEVELOPMENT", "maybe"},
		"duplicates":  {"LEDGER_DUPLICATE_TX", "overwrite"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), kv[0])
		})
	}

	t.Run("missing env file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
		assert.Error(t, err)
	})
}
