package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	metric := &dto.Metric{}
	require.NoError(t, c.Write(metric))
	return metric.GetCounter().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Observer) uint64 {
	t.Helper()

	metric := &dto.Metric{}
	require.NoError(t, h.(prometheus.Metric).Write(metric))
	return metric.GetHistogram().GetSampleCount()
}

func TestNewDiscountMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	m, err := NewDiscountMetrics(reg)
	require.NoError(t, err)
	require.NotNil(t, m)

	again, err := NewDiscountMetrics(reg)
	require.NoError(t, err)
	assert.Same(t, m.rentalsCreated, again.rentalsCreated)
}

func TestDiscountMetrics_ObserveDiscount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewDiscountMetrics(reg)
	require.NoError(t, err)

	m.ObserveDiscount("success", 200*time.Millisecond, 15)
	m.ObserveDiscount("success", 300*time.Millisecond, 25)
	m.ObserveDiscount("validation_error", 100*time.Millisecond, 0)

	assert.Equal(t, 2.0, counterValue(t, m.oracleRequests.WithLabelValues("success")))
	assert.Equal(t, 1.0, counterValue(t, m.oracleRequests.WithLabelValues("validation_error")))
	assert.Equal(t, 0.0, counterValue(t, m.oracleRequests.WithLabelValues("oracle_error")))

	assert.Equal(t, uint64(2), histogramCount(t, m.oracleDuration.WithLabelValues("success")))
	assert.Equal(t, uint64(2), histogramCount(t, m.discountValue))
}

func TestDiscountMetrics_RentalCreated(t *testing.T) {
	m, err := NewDiscountMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RentalCreated()
	m.RentalCreated()

	assert.Equal(t, 2.0, counterValue(t, m.rentalsCreated))
}

func TestDiscountMetrics_NilReceiver(t *testing.T) {
	var m *DiscountMetrics

	assert.NotPanics(t, func() {
		m.ObserveDiscount("success", time.Second, 10)
		m.RentalCreated()
	})
}
