package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Validation outcomes recorded against the pricing boundary.
const (
	OutcomeValid      = "valid"
	OutcomeMismatch   = "mismatch"
	OutcomeBadRequest = "bad_request"
)

// PricingMetrics records pricing engine activity at the HTTP boundaries.
type PricingMetrics struct {
	validations   *prometheus.CounterVec
	quoteDuration *prometheus.HistogramVec
	lookupMisses  *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_validations_total",
		Help: "Price validation requests by outcome.",
	}, []string{"outcome"})
	quoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_quote_duration_seconds",
		Help:    "Duration of quote computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	lookupMisses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricebook_lookup_misses_total",
		Help: "Legacy price book lookups that found no published price.",
	}, []string{"family"})
	reg.MustRegister(validations, quoteDuration, lookupMisses)
	return &PricingMetrics{
		validations:   validations,
		quoteDuration: quoteDuration,
		lookupMisses:  lookupMisses,
	}
}

// IncValidation counts one validation request with the given outcome.
func (p *PricingMetrics) IncValidation(outcome string) {
	if p == nil || p.validations == nil {
		return
	}
	p.validations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveQuote records the duration of a quote computation.
func (p *PricingMetrics) ObserveQuote(source string, duration time.Duration) {
	if p == nil || p.quoteDuration == nil {
		return
	}
	p.quoteDuration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

// IncLookupMiss counts one legacy price book miss for the family.
func (p *PricingMetrics) IncLookupMiss(family string) {
	if p == nil || p.lookupMisses == nil {
		return
	}
	p.lookupMisses.WithLabelValues(normalizeLabel(family)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
