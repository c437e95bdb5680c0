package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(1000), cfg.CommissionBPS)
	assert.Equal(t, int64(100000), cfg.ExhibitionBaseFee)
	assert.Equal(t, 3, cfg.ExhibitionBaseDays)
	assert.Equal(t, 5*time.Second, cfg.CallTimeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_RejectsBadCommission(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("COMMISSION_BPS", "12000")

	_, err := Load()
	assert.Error(t, err)
}
