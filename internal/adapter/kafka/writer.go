package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/pm25-backfill/internal/config"
	"github.com/couchcryptid/pm25-backfill/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes backfilled county estimates to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer    messageWriter
	batchSize int
	logger    *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchSize:    cfg.KafkaBatchSize,
	}
	return &Writer{writer: w, batchSize: cfg.KafkaBatchSize, logger: logger}
}

// Name identifies the loader in logs.
func (w *Writer) Name() string { return "kafka" }

// Load publishes one message per estimate, keyed by FIPS code so every
// county lands on a stable partition. Messages are sent in chunks of the
// configured batch size.
func (w *Writer) Load(ctx context.Context, result domain.Result) error {
	if len(result.Estimates) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(result.Estimates))
	for i := range result.Estimates {
		msg, err := serializeToMessage(result.Estimates[i], result.GeneratedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}

	size := w.batchSize
	if size <= 0 {
		size = len(msgs)
	}
	for start := 0; start < len(msgs); start += size {
		end := min(start+size, len(msgs))
		if err := w.writer.WriteMessages(ctx, msgs[start:end]...); err != nil {
			return fmt.Errorf("publish estimates %d-%d: %w", start, end, err)
		}
	}

	w.logger.Info("estimates published", "messages", len(msgs))
	return nil
}

// Close flushes pending messages and releases the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Estimate into a Kafka message.
func serializeToMessage(e domain.Estimate, processedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize estimate %s: %w", e.FIPS, err)
	}
	return kafkago.Message{
		Key:   []byte(e.FIPS),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "method", Value: []byte(e.Method)},
			{Key: "processed_at", Value: []byte(processedAt.Format(time.RFC3339))},
		},
	}, nil
}
