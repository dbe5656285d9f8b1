package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

const maxKafkaBatchSize = 10000

// Config holds all job settings, populated from environment variables.
// With nothing set, paths resolve to data/pm25_by_county.csv and
// data/places_county.csv relative to the working directory.
type Config struct {
	DataDir    string
	PM25Path   string
	PlacesPath string

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka publishing is optional; it is enabled by setting KAFKA_BROKERS.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
	KafkaBatchSize int

	// Metrics are pushed only when PUSHGATEWAY_URL is set.
	PushgatewayURL string
	PushgatewayJob string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := parseKafkaBatchSize()
	if err != nil {
		return nil, err
	}

	dataDir := sharedcfg.EnvOrDefault("DATA_DIR", "data")

	cfg := &Config{
		DataDir:         dataDir,
		PM25Path:        sharedcfg.EnvOrDefault("PM25_PATH", filepath.Join(dataDir, "pm25_by_county.csv")),
		PlacesPath:      sharedcfg.EnvOrDefault("PLACES_PATH", filepath.Join(dataDir, "places_county.csv")),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		KafkaSinkTopic:  sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "county-pm25-estimates"),
		KafkaBatchSize:  batchSize,
		PushgatewayURL:  os.Getenv("PUSHGATEWAY_URL"),
		PushgatewayJob:  sharedcfg.EnvOrDefault("PUSHGATEWAY_JOB", "pm25_backfill"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(brokers)
		cfg.KafkaEnabled = len(cfg.KafkaBrokers) > 0
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", cfg.LogFormat)
	}

	return cfg, nil
}

func parseKafkaBatchSize() (int, error) {
	s := os.Getenv("KAFKA_BATCH_SIZE")
	if s == "" {
		return 500, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxKafkaBatchSize {
		return 0, fmt.Errorf("invalid KAFKA_BATCH_SIZE %q: must be 1-%d", s, maxKafkaBatchSize)
	}
	return n, nil
}
