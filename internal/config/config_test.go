package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, filepath.Join("data", "pm25_by_county.csv"), cfg.PM25Path)
	assert.Equal(t, filepath.Join("data", "places_county.csv"), cfg.PlacesPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "county-pm25-estimates", cfg.KafkaSinkTopic)
	assert.Equal(t, 500, cfg.KafkaBatchSize)
	assert.Empty(t, cfg.PushgatewayURL)
	assert.Equal(t, "pm25_backfill", cfg.PushgatewayJob)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/aq")
	t.Setenv("PLACES_PATH", "/srv/ref/places.csv")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_BATCH_SIZE", "100")
	t.Setenv("PUSHGATEWAY_URL", "http://pushgateway:9091")
	t.Setenv("PUSHGATEWAY_JOB", "pm25_nightly")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/aq", cfg.DataDir)
	assert.Equal(t, filepath.Join("/srv/aq", "pm25_by_county.csv"), cfg.PM25Path)
	assert.Equal(t, "/srv/ref/places.csv", cfg.PlacesPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, 100, cfg.KafkaBatchSize)
	assert.Equal(t, "http://pushgateway:9091", cfg.PushgatewayURL)
	assert.Equal(t, "pm25_nightly", cfg.PushgatewayJob)
}

func TestLoad_EmptySinkTopicUsesDefault(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, "county-pm25-estimates", cfg.KafkaSinkTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidKafkaBatchSize(t *testing.T) {
	for _, v := range []string{"0", "-5", "abc", "10001"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("KAFKA_BATCH_SIZE", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "KAFKA_BATCH_SIZE")
		})
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
