package usecase

import (
	"context"
	"time"

	"github.com/allisson/safestorage/internal/metrics"
	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
)

// resolverWithMetrics decorates Resolver with metrics instrumentation.
type resolverWithMetrics struct {
	next    Resolver
	metrics metrics.BusinessMetrics
}

// NewResolverWithMetrics wraps a Resolver with metrics recording.
func NewResolverWithMetrics(useCase Resolver, m metrics.BusinessMetrics) Resolver {
	return &resolverWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Resolve records metrics for resolve operations.
func (r *resolverWithMetrics) Resolve(ctx context.Context, req ResolveRequest) (*ssDomain.Resolution, error) {
	start := time.Now()
	resolution, err := r.next.Resolve(ctx, req)

	r.metrics.Observe(ctx, metrics.OperationResolve, metrics.StatusOf(err), time.Since(start))

	return resolution, err
}

// encrypterWithMetrics decorates Encrypter with metrics instrumentation.
type encrypterWithMetrics struct {
	next    Encrypter
	metrics metrics.BusinessMetrics
}

// NewEncrypterWithMetrics wraps an Encrypter with metrics recording.
func NewEncrypterWithMetrics(useCase Encrypter, m metrics.BusinessMetrics) Encrypter {
	return &encrypterWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Encrypt records metrics for encrypt operations.
func (e *encrypterWithMetrics) Encrypt(ctx context.Context, req EncryptRequest) (string, error) {
	start := time.Now()
	blob, err := e.next.Encrypt(ctx, req)

	e.metrics.Observe(ctx, metrics.OperationEncrypt, metrics.StatusOf(err), time.Since(start))

	return blob, err
}
