package secretstore

import (
	"context"
	"time"

	"github.com/allisson/safestorage/internal/errors"
	"github.com/allisson/safestorage/internal/metrics"
)

// storeWithMetrics decorates Store with metrics instrumentation.
type storeWithMetrics struct {
	next    Store
	metrics metrics.BusinessMetrics
}

// NewStoreWithMetrics wraps a Store with metrics recording.
func NewStoreWithMetrics(store Store, m metrics.BusinessMetrics) Store {
	return &storeWithMetrics{
		next:    store,
		metrics: m,
	}
}

// GetSecret records metrics for secret lookups. A missing entry counts as
// "not_found" so fallback lookups are not reported as failures.
func (s *storeWithMetrics) GetSecret(ctx context.Context, service, account string) (string, error) {
	start := time.Now()
	secret, err := s.next.GetSecret(ctx, service, account)

	status := metrics.StatusOf(err)
	if errors.Is(err, ErrSecretNotFound) {
		status = metrics.StatusNotFound
	}

	s.metrics.Observe(ctx, metrics.OperationGetSecret, status, time.Since(start))

	return secret, err
}
