package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/matching"
	"github.com/MrJamesThe3rd/fleetledger/internal/matching/store"
)

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return store.New(db), mock
}

func TestStore_FindClient(t *testing.T) {
	s, mock := newStore(t)
	clientID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payer_mappings WHERE $1 ILIKE '%' || raw_pattern || '%'`)).
		WithArgs("TRF JUAN PEREZ").
		WillReturnRows(sqlmock.NewRows([]string{"client_id"}).AddRow(clientID.String()))

	got, ok, err := s.FindClient(context.Background(), "TRF JUAN PEREZ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, clientID, got)
}

func TestStore_FindClient_NoMatch(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payer_mappings`)).
		WithArgs("UNKNOWN").
		WillReturnRows(sqlmock.NewRows([]string{"client_id"}))

	_, ok, err := s.FindClient(context.Background(), "UNKNOWN")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_CreateMapping(t *testing.T) {
	s, mock := newStore(t)
	m := &matching.Mapping{RawPattern: "JUAN PEREZ", ClientID: uuid.New()}
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO payer_mappings`)).
		WithArgs("JUAN PEREZ", m.ClientID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), now))

	require.NoError(t, s.CreateMapping(context.Background(), m))
	assert.Equal(t, id, m.ID)
}

func TestStore_CreateMapping_UnknownClient(t *testing.T) {
	s, mock := newStore(t)
	m := &matching.Mapping{RawPattern: "JUAN PEREZ", ClientID: uuid.New()}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO payer_mappings`)).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

	err := s.CreateMapping(context.Background(), m)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestStore_ListMappings(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, raw_pattern, client_id, created_at FROM payer_mappings`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "raw_pattern", "client_id", "created_at"}).
			AddRow(uuid.NewString(), "JUAN PEREZ", uuid.NewString(), time.Now()).
			AddRow(uuid.NewString(), "MARIA LOPEZ", uuid.NewString(), time.Now()))

	got, err := s.ListMappings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "JUAN PEREZ", got[0].RawPattern)
}
