package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8081

[database]
host = "localhost"
port = 5432
user = "salon"
password = "${TEST_SALON_DB_PASSWORD}"
dbname = "salon"

[logs]
level = "debug"

[salon]
id = "4f1c2b7e-8d0a-4a57-9a3e-2c6f4d1e9b10"
name = "Studio Nova"
timezone = "Europe/Berlin"

[admin]
username = "owner"
password_hash = "$2a$10$abcdefghijklmnopqrstuv"

[kafka]
enabled = true
brokers = "kafka-1:9092, kafka-2:9092,"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_SALON_DB_PASSWORD", "s3cret")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "Studio Nova", cfg.Salon.Name)
	assert.Equal(t, "4f1c2b7e-8d0a-4a57-9a3e-2c6f4d1e9b10", cfg.Salon.SalonID().String())
	assert.Equal(t, 5, cfg.Booking.NextSlotsDefaultLimit)
	assert.Equal(t, 50, cfg.Booking.NextSlotsMaxLimit)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.BrokerList())
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SALON_DB_HOST", "db.internal")
	t.Setenv("SALON_DB_PORT", "6543")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoad_TrustedProxies(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Empty(t, cfg.RateLimit.TrustedProxyList())

	t.Setenv("SALON_TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1,")
	cfg, err = Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.RateLimit.TrustedProxyList())
}

func TestLoad_InvalidSalonID(t *testing.T) {
	body := `
[salon]
id = "not-a-uuid"

[admin]
username = "owner"
password_hash = "x"
`
	_, err := Load(writeConfig(t, body))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestExpandEnv_KeepsBareDollar(t *testing.T) {
	t.Setenv("TEST_SALON_NAME", "Nova")

	assert.Equal(t, `name = "Nova" hash = "$2a$10$xyz"`, expandEnv(`name = "${TEST_SALON_NAME}" hash = "$2a$10$xyz"`))
}
