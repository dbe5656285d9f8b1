package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends every metric in m.Registry to a Prometheus Pushgateway, replacing
// the previous values for job.
func Push(ctx context.Context, url, job string, m *Metrics) error {
	if err := push.New(url, job).Gatherer(m.Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
