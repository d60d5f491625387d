package config_test

import (
	"testing"

	"app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "appdb")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("GO_ENV", "dev")
}

func TestLoad_RequiredMissing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoad_PostgresPortMustBeNumber(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_PORT", "not-a-port")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_PORT must be number")
}

// 任意項目は既定値で埋まる
func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, int64(300), cfg.DeliveryFee)
	assert.Equal(t, int64(10000), cfg.FreeDeliveryThreshold)
	assert.Equal(t, "courier", cfg.DeliveryFeeMethods)
	assert.Equal(t, "disable", cfg.PostgresSSLMode)
	assert.Empty(t, cfg.TelegramBotToken)
}

// DSNはConfigの値だけから組み立てる（環境変数は再読みしない）
func TestConfig_DSN(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=appdb sslmode=disable",
		cfg.DSN(),
	)
}

func TestConfig_DSN_DatabaseURLWins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/appdb")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://app:secret@db:5432/appdb", cfg.DSN())
}
