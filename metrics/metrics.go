package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BalanceAdjustments counts single-account balance mutations by operation
	// (deposit, withdraw) and outcome (ok, rejected, error).
	BalanceAdjustments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "balance_adjustments_total",
			Help:      "Total number of single-account balance adjustments",
		},
		[]string{"operation", "outcome"},
	)

	// Transfers counts two-account transfers by outcome (ok, rejected, error).
	Transfers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "transfers_total",
			Help:      "Total number of two-account transfers",
		},
		[]string{"outcome"},
	)
)
