package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern, and value. Uses regex to handle
// extra OTel scope labels injected by the Prometheus exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestNewBusinessMetrics(t *testing.T) {
	t.Run("Success_CreateBusinessMetrics", func(t *testing.T) {
		provider, err := NewProvider("safestorage_test")
		require.NoError(t, err)

		businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "safestorage_test")

		require.NoError(t, err)
		assert.NotNil(t, businessMetrics)
	})
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusOf(nil))
	assert.Equal(t, StatusError, StatusOf(errors.New("keychain locked")))
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.NotNil(t, noOpMetrics)
	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)

	t.Run("NoOp_ObserveDoesNotPanic", func(t *testing.T) {
		noOpMetrics.Observe(context.Background(), OperationResolve, StatusSuccess, 100*time.Millisecond)
		noOpMetrics.Observe(context.Background(), OperationEncrypt, StatusError, 200*time.Millisecond)
	})
}

func TestBusinessMetrics_Observe(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.Observe(ctx, OperationResolve, StatusSuccess, 50*time.Millisecond)
	bm.Observe(ctx, OperationResolve, StatusSuccess, 60*time.Millisecond)
	bm.Observe(ctx, OperationResolve, StatusError, 100*time.Millisecond)
	bm.Observe(ctx, OperationEncrypt, StatusSuccess, 10*time.Millisecond)
	bm.Observe(ctx, OperationGetSecret, StatusNotFound, 150*time.Millisecond)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, provider.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	output := string(content)

	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="safestorage".*operation="resolve".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="safestorage".*operation="resolve".*status="error"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="safestorage".*operation="encrypt".*status="success"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="secretstore".*operation="get_secret".*status="not_found"`,
		`1`,
	)

	// Counter and histogram share labels.
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_count`,
		`domain="safestorage".*operation="resolve".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_sum`,
		`domain="safestorage".*operation="resolve".*status="success"`,
		``,
	)
}
