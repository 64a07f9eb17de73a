package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the wallet.
type Metrics struct {
	// Ledger metrics
	TransactionsAdded    *prometheus.CounterVec
	TransactionsRejected *prometheus.CounterVec
	TransactionsRemoved  prometheus.Counter
	LimitUpdates         prometheus.Counter
	PersistFailures      prometheus.Counter

	// Aggregate gauges, updated through the ledger's observer hook
	Balance prometheus.Gauge
	Income  prometheus.Gauge
	Expense prometheus.Gauge

	// Store metrics
	StoreOperations *prometheus.CounterVec
	StoreErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsAdded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mywallet_transactions_added_total",
				Help: "Total number of transactions recorded",
			},
			[]string{"direction"},
		),
		TransactionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mywallet_transactions_rejected_total",
				Help: "Total number of transactions rejected by reason",
			},
			[]string{"reason"},
		),
		TransactionsRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mywallet_transactions_removed_total",
			Help: "Total number of transactions removed",
		}),
		LimitUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mywallet_limit_updates_total",
			Help: "Total number of category limit updates",
		}),
		PersistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mywallet_persist_failures_total",
			Help: "Total number of failed writes to the durable store",
		}),

		Balance: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mywallet_balance",
			Help: "Current wallet balance",
		}),
		Income: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mywallet_income_total",
			Help: "Current total income",
		}),
		Expense: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mywallet_expense_total",
			Help: "Current total expense",
		}),

		StoreOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mywallet_store_operations_total",
				Help: "Total durable store operations",
			},
			[]string{"operation"},
		),
		StoreErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mywallet_store_errors_total",
				Help: "Total durable store errors",
			},
			[]string{"operation"},
		),
	}
}
