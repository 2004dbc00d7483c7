package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// InvoiceBuildTotal counts invoice build outcomes.
	InvoiceBuildTotal *prometheus.CounterVec
	// InvoiceCacheTotal counts invoice view cache lookups by result.
	InvoiceCacheTotal *prometheus.CounterVec
	// LoadSessionsStarted counts load sessions started.
	LoadSessionsStarted prometheus.Counter
	// LoadSessionsSuperseded counts load sessions cancelled by a newer one.
	LoadSessionsSuperseded prometheus.Counter
	// LoadPagesFetched counts line-item page fetches across all sessions.
	LoadPagesFetched prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers invoice-domain
// Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		InvoiceBuildTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_build_total",
			Help:      "Count of invoice build outcomes.",
		}, []string{"result"}))
		InvoiceCacheTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_cache_total",
			Help:      "Count of invoice view cache lookups by result.",
		}, []string{"result"}))
		LoadSessionsStarted = register[prometheus.Counter](reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_sessions_started_total",
			Help:      "Count of line-item load sessions started.",
		}))
		LoadSessionsSuperseded = register[prometheus.Counter](reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_sessions_superseded_total",
			Help:      "Count of load sessions superseded by a newer session.",
		}))
		LoadPagesFetched = register[prometheus.Counter](reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_pages_fetched_total",
			Help:      "Count of line-item pages fetched across all sessions.",
		}))
	})
}
