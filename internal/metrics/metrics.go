package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the loan workflow.
type Metrics struct {
	ChatMessages        prometheus.Counter
	ExtractionFailures  prometheus.Counter
	EligibilityComputed prometheus.Counter
	Verifications       *prometheus.CounterVec
}

// New registers and returns the workflow metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		ChatMessages: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loan_chat_messages_total",
			Help: "Total chat messages processed.",
		}),
		ExtractionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loan_extraction_failures_total",
			Help: "Total extraction calls that degraded to the fallback reply.",
		}),
		EligibilityComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loan_eligibility_computed_total",
			Help: "Total eligibility figures computed.",
		}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_verifications_total",
			Help: "Total verification runs by resulting status.",
		}, []string{"status"}),
	}
}

// Nop returns metrics backed by an isolated registry, for tests that build
// several services in one process.
func Nop() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		ChatMessages: factory.NewCounter(prometheus.CounterOpts{
			Name: "loan_chat_messages_total",
			Help: "Total chat messages processed.",
		}),
		ExtractionFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "loan_extraction_failures_total",
			Help: "Total extraction calls that degraded to the fallback reply.",
		}),
		EligibilityComputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "loan_eligibility_computed_total",
			Help: "Total eligibility figures computed.",
		}),
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_verifications_total",
			Help: "Total verification runs by resulting status.",
		}, []string{"status"}),
	}
}
