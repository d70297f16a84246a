// Package metrics exposes Prometheus instruments for the ledger engine.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/pennypool/internal/models"
)

var (
	contributions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pennypool",
		Name:      "contributions_total",
		Help:      "Contributions into groups and challenges by outcome.",
	}, []string{"kind", "outcome"})

	ledgerMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pennypool",
		Name:      "ledger_mutations_total",
		Help:      "Saving and expense mutations by record kind, operation and outcome.",
	}, []string{"kind", "op", "outcome"})

	rpcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pennypool",
		Name:      "rpc_duration_seconds",
		Help:      "Latency of RPC handlers.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure", "outcome"})
)

// Outcome names the error class of err for use as a label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrValidation):
		return "invalid"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, models.ErrNotMember):
		return "not_member"
	case errors.Is(err, models.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, models.ErrConflict):
		return "conflict"
	case errors.Is(err, models.ErrStoreUnavailable):
		return "unavailable"
	}
	return "error"
}

// ObserveContribution counts one contribution attempt.
func ObserveContribution(kind models.TargetKind, err error) {
	contributions.WithLabelValues(string(kind), Outcome(err)).Inc()
}

// ObserveLedgerMutation counts one ledger mutation attempt.
func ObserveLedgerMutation(kind models.RecordKind, op string, err error) {
	ledgerMutations.WithLabelValues(string(kind), op, Outcome(err)).Inc()
}

// ObserveRPC records the latency of one RPC.
func ObserveRPC(procedure, outcome string, elapsed time.Duration) {
	rpcDuration.WithLabelValues(procedure, outcome).Observe(elapsed.Seconds())
}
