package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StorageDynamoDB, cfg.Storage)
	assert.Equal(t, "service_orders", cfg.Tables.Orders)
	assert.Equal(t, "quotations", cfg.Tables.Quotations)
	assert.Equal(t, "devices", cfg.Tables.Devices)
	assert.Equal(t, 12*time.Hour, cfg.JWT.TTL)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "yes")
	t.Setenv("JWT_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Payments.Mock)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{"JWT_SECRET": ""}},
		{name: "short secret", env: map[string]string{"JWT_SECRET": "short"}},
		{name: "bad port", env: map[string]string{"JWT_SECRET": "0123456789abcdef", "PORT": "abc"}},
		{name: "bad driver", env: map[string]string{"JWT_SECRET": "0123456789abcdef", "STORAGE_DRIVER": "postgres"}},
		{name: "bad ttl", env: map[string]string{"JWT_SECRET": "0123456789abcdef", "JWT_TTL": "soon"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PORT", "")
			t.Setenv("STORAGE_DRIVER", "")
			t.Setenv("JWT_TTL", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
