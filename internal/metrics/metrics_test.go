package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "ok", want: OutcomeOK},
		{name: "validation", err: apperr.Validation("bad date"), want: OutcomeValidation},
		{name: "not_found", err: fmt.Errorf("getting rental: %w", apperr.NotFound("rental")), want: OutcomeNotFound},
		{name: "invalid_state", err: apperr.InvalidState("already finalized"), want: OutcomeInvalidState},
		{name: "integrity", err: apperr.Blocked("client", map[string]int64{"rentals": 1}), want: OutcomeIntegrity},
		{name: "permission", err: apperr.ErrPermission, want: OutcomePermission},
		{name: "deadline", err: fmt.Errorf("begin transaction: %w", context.DeadlineExceeded), want: OutcomeDeadlineExceeded},
		{name: "serialization", err: &pgconn.PgError{Code: "40001"}, want: OutcomeSerializationFailure},
		{name: "lock_timeout", err: &pgconn.PgError{Code: "55P03"}, want: OutcomeLockTimeout},
		{name: "unknown", err: errors.New("boom"), want: OutcomeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestRecorder_Observe(t *testing.T) {
	registry := prometheus.NewRegistry()

	r, err := NewRecorder(registry)
	require.NoError(t, err)

	started := time.Now().Add(-50 * time.Millisecond)

	r.Observe("record_payment", started, nil)
	r.Observe("record_payment", started, nil)
	r.Observe("record_payment", started, apperr.Validation("overpayment"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.operations.WithLabelValues("record_payment", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("record_payment", OutcomeValidation)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration, "fleetledger_operation_duration_seconds"))
}

func TestNewRecorder_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	_, err := NewRecorder(registry)
	require.NoError(t, err)

	_, err = NewRecorder(registry)
	assert.Error(t, err)
}
