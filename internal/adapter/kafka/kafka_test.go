package kafka

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/pm25-backfill/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	calls  [][]kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, msgs)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testResult(n int) domain.Result {
	estimates := make([]domain.Estimate, n)
	for i := range estimates {
		estimates[i] = domain.Estimate{
			FIPS:   []string{"01001", "01003", "01005", "02013", "02016"}[i%5],
			PM25:   "8.500",
			Method: domain.MethodStateMean,
		}
	}
	return domain.Result{
		Estimates:   estimates,
		GeneratedAt: time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	e := domain.Estimate{FIPS: "01005", PM25: "8.500", Method: domain.MethodStateMean}

	msg, err := serializeToMessage(e, now)
	require.NoError(t, err)

	assert.Equal(t, []byte("01005"), msg.Key)
	assert.JSONEq(t, `{"fips":"01005","pm25_mean_2016_2024":"8.500","method":"state_mean"}`, string(msg.Value))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "method", msg.Headers[0].Key)
	assert.Equal(t, []byte("state_mean"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestWriter_LoadChunksByBatchSize(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, batchSize: 2, logger: slog.Default()}

	require.NoError(t, w.Load(context.Background(), testResult(5)))

	require.Len(t, fw.calls, 3)
	assert.Len(t, fw.calls[0], 2)
	assert.Len(t, fw.calls[1], 2)
	assert.Len(t, fw.calls[2], 1)
	assert.Equal(t, []byte("02016"), fw.calls[2][0].Key)
}

func TestWriter_LoadEmptyResult(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, batchSize: 10, logger: slog.Default()}

	require.NoError(t, w.Load(context.Background(), domain.Result{}))
	assert.Empty(t, fw.calls)
}

func TestWriter_LoadPropagatesError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker unavailable")}
	w := &Writer{writer: fw, batchSize: 10, logger: slog.Default()}

	err := w.Load(context.Background(), testResult(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
}

func TestWriter_Close(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, logger: slog.Default()}

	require.NoError(t, w.Close())
	assert.True(t, fw.closed)
}
