// Package metrics exports ledger operation counters and latencies to Prometheus.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
)

const (
	OutcomeOK                   = "ok"
	OutcomeValidation           = "validation"
	OutcomeNotFound             = "not_found"
	OutcomeInvalidState         = "invalid_state"
	OutcomeIntegrity            = "integrity"
	OutcomePermission           = "permission"
	OutcomeDeadlineExceeded     = "deadline_exceeded"
	OutcomeSerializationFailure = "serialization_failure"
	OutcomeLockTimeout          = "lock_timeout"
	OutcomeUnknown              = "unknown"
)

const (
	pgSerializationFailure = "40001"
	pgLockNotAvailable     = "55P03"
)

// Recorder counts ledger operations by outcome and observes their latency.
type Recorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecorder registers the ledger collectors with registerer, falling back
// to the default registerer when it is nil.
func NewRecorder(registerer prometheus.Registerer) (*Recorder, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetledger_operations_total",
			Help: "Ledger operations by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleetledger_operation_duration_seconds",
			Help:    "Ledger operation latency, including the database transaction.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{r.operations, r.duration} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Observe implements ledger.Observer.
func (r *Recorder) Observe(operation string, started time.Time, err error) {
	r.operations.WithLabelValues(operation, Classify(err)).Inc()
	r.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// Classify maps an operation error onto a low-cardinality outcome label.
func Classify(err error) string {
	if err == nil {
		return OutcomeOK
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return OutcomeDeadlineExceeded
	}

	switch apperr.Kind(err) {
	case apperr.ErrValidation:
		return OutcomeValidation
	case apperr.ErrNotFound:
		return OutcomeNotFound
	case apperr.ErrInvalidState:
		return OutcomeInvalidState
	case apperr.ErrIntegrity:
		return OutcomeIntegrity
	case apperr.ErrPermission:
		return OutcomePermission
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure:
			return OutcomeSerializationFailure
		case pgLockNotAvailable:
			return OutcomeLockTimeout
		}
	}

	return OutcomeUnknown
}
