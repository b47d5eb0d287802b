package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retried Ruru API calls
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ruru_api_retries_total",
		Help: "Total number of retry attempts performed against the Ruru API",
	})
}

// NewStaleResponsesTotal returns a counter of list responses dropped because a newer page was requested
func NewStaleResponsesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resource_stale_responses_total",
		Help: "Total number of list responses discarded because a newer request superseded them",
	})
}

// NewMutationsTotal returns a counter of admin status mutations labelled by resource, action and outcome
func NewMutationsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_mutations_total",
		Help: "Total number of admin status mutations",
	}, []string{"resource", "action", "outcome"})
}

// NewAuditEventsTotal returns a counter of audit events handled by the worker labelled by outcome
func NewAuditEventsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_events_total",
		Help: "Total number of audit events processed by the worker",
	}, []string{"outcome"})
}

// NewLeadsTotal returns a counter of lead form submissions labelled by form and outcome
func NewLeadsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lead_submissions_total",
		Help: "Total number of lead form submissions forwarded to the Ruru API",
	}, []string{"form", "outcome"})
}

// Labels3 adapts a three-label CounterVec to Inc(a, b, c).
type Labels3 struct{ vec *prometheus.CounterVec }

// Mutations wraps vec for the admin service.
func Mutations(vec *prometheus.CounterVec) Labels3 { return Labels3{vec: vec} }

func (l Labels3) Inc(a, b, c string) { l.vec.WithLabelValues(a, b, c).Inc() }

// Labels2 adapts a two-label CounterVec to Inc(a, b).
type Labels2 struct{ vec *prometheus.CounterVec }

// Leads wraps vec for the leads service.
func Leads(vec *prometheus.CounterVec) Labels2 { return Labels2{vec: vec} }

func (l Labels2) Inc(a, b string) { l.vec.WithLabelValues(a, b).Inc() }

// Labels1 adapts a single-label CounterVec to Inc(a).
type Labels1 struct{ vec *prometheus.CounterVec }

// Outcomes wraps vec for the audit processor.
func Outcomes(vec *prometheus.CounterVec) Labels1 { return Labels1{vec: vec} }

func (l Labels1) Inc(a string) { l.vec.WithLabelValues(a).Inc() }

// Set bundles the back-office counters so they can be registered once.
type Set struct {
	RateLimitExceeded prometheus.Counter
	GatewayRetries    prometheus.Counter
	StaleResponses    prometheus.Counter
	Mutations         *prometheus.CounterVec
	Leads             *prometheus.CounterVec
}

// NewSet creates all back-office counters.
func NewSet() *Set {
	return &Set{
		RateLimitExceeded: NewRateLimitExceededTotal(),
		GatewayRetries:    NewGatewayRetriesTotal(),
		StaleResponses:    NewStaleResponsesTotal(),
		Mutations:         NewMutationsTotal(),
		Leads:             NewLeadsTotal(),
	}
}

// Register registers every counter of the set on reg.
func (s *Set) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{s.RateLimitExceeded, s.GatewayRetries, s.StaleResponses, s.Mutations, s.Leads} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
