// Package metrics exposes Prometheus instrumentation for the rental workflow.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DiscountMetrics tracks discount oracle round-trips and created rentals.
//
// A nil *DiscountMetrics is valid and records nothing.
type DiscountMetrics struct {
	oracleRequests *prometheus.CounterVec
	oracleDuration *prometheus.HistogramVec
	discountValue  prometheus.Histogram
	rentalsCreated prometheus.Counter
}

// NewDiscountMetrics registers the collectors on registerer.
// A nil registerer falls back to the default Prometheus registry.
func NewDiscountMetrics(registerer prometheus.Registerer) (*DiscountMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &DiscountMetrics{
		oracleRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shoe_rental",
			Name:      "discount_oracle_requests_total",
			Help:      "Discount oracle requests by outcome",
		}, []string{"outcome"}),
		oracleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shoe_rental",
			Name:      "discount_oracle_duration_seconds",
			Help:      "Round-trip time of discount oracle requests",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
		discountValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shoe_rental",
			Name:      "discount_percentage",
			Help:      "Accepted discount percentages",
			Buckets:   []float64{0, 10, 15, 20, 25, 50, 100},
		}),
		rentalsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shoe_rental",
			Name:      "rentals_created_total",
			Help:      "Rentals persisted",
		}),
	}

	var err error
	m.oracleRequests, err = register(registerer, m.oracleRequests)
	if err != nil {
		return nil, err
	}
	m.oracleDuration, err = register(registerer, m.oracleDuration)
	if err != nil {
		return nil, err
	}
	m.discountValue, err = register(registerer, m.discountValue)
	if err != nil {
		return nil, err
	}
	m.rentalsCreated, err = register(registerer, m.rentalsCreated)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// register returns the already registered collector when an equal one exists,
// so building the metrics twice against one registry is harmless.
func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) (T, error) {
	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return collector, fmt.Errorf("register collector: %w", err)
	}
	return collector, nil
}

// ObserveDiscount records a single oracle round-trip.
func (m *DiscountMetrics) ObserveDiscount(outcome string, took time.Duration, discount int) {
	if m == nil {
		return
	}

	m.oracleRequests.WithLabelValues(outcome).Inc()
	m.oracleDuration.WithLabelValues(outcome).Observe(took.Seconds())
	if outcome == "success" {
		m.discountValue.Observe(float64(discount))
	}
}

// RentalCreated counts a persisted rental.
func (m *DiscountMetrics) RentalCreated() {
	if m == nil {
		return
	}
	m.rentalsCreated.Inc()
}
