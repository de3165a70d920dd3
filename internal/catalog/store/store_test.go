package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
	"github.com/MrJamesThe3rd/fleetledger/internal/catalog/store"
)

func TestStore_CreateVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	now := time.Now()

	v := &catalog.Vehicle{
		Name:      "Hilux",
		Plate:     "L123456",
		Ownership: catalog.OwnershipThirdParty,
		OwnerName: "Pedro Gómez",
		DailyRate: 4500,
		Status:    catalog.VehicleAvailable,
	}

	mock.ExpectQuery("INSERT INTO vehicles").
		WithArgs("Hilux", "L123456", catalog.OwnershipThirdParty, "Pedro Gómez", "", int64(4500), catalog.VehicleAvailable).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), now))

	require.NoError(t, store.New(db).CreateVehicle(context.Background(), v))
	assert.Equal(t, id, v.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	s := store.New(db)

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "plate", "ownership", "owner_name", "owner_dni", "daily_rate", "status", "created_at", "updated_at"}).
			AddRow(id.String(), "Hilux", "L123456", "Tercero", "Pedro", nil, int64(4500), "Disponible", time.Now(), nil)

		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(rows)

		v, err := s.GetVehicle(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, catalog.OwnershipThirdParty, v.Ownership)
		assert.Equal(t, "Pedro", v.OwnerName)
		assert.Empty(t, v.OwnerDNI)
		assert.Nil(t, v.UpdatedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := s.GetVehicle(context.Background(), id)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteClient_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectExec("DELETE FROM clients WHERE id = \\$1").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.New(db).DeleteClient(context.Background(), id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CountInvoicesByClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM invoices WHERE client_id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	n, err := store.New(db).CountInvoicesByClient(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListAgents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "dni", "phone", "email", "created_at"}).
		AddRow(uuid.NewString(), "Ana Rivera", "001-1", nil, "ana@example.com", time.Now()).
		AddRow(uuid.NewString(), "Luis Peña", nil, nil, nil, time.Now())

	mock.ExpectQuery("SELECT id, name, dni, phone, email, created_at FROM commercial_agents").
		WillReturnRows(rows)

	agents, err := store.New(db).ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "001-1", agents[0].DNI)
	assert.Empty(t, agents[1].DNI)
	assert.NoError(t, mock.ExpectationsWereMet())
}
