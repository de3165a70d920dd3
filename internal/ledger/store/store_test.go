package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger/store"
)

var invoiceCols = []string{"id", "number", "client_id", "rental_id", "amount", "paid_amount", "status", "details", "date", "created_at"}

func begin(t *testing.T) (*sql.DB, sqlmock.Sqlmock, ledger.Tx) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectBegin()

	tx, err := store.New(db).Begin(context.Background())
	require.NoError(t, err)

	return db, mock, tx
}

func TestTx_NextSequence(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO document_sequences").
		WithArgs("FC", "26", 41).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(42))

	n, err := tx.NextSequence(context.Background(), "FC", "26", 41)
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_LastDocumentNumber(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT number FROM payments").
			WithArgs("P-%", "%/26").
			WillReturnRows(sqlmock.NewRows([]string{"number"}).AddRow("P-017/26"))

		got, err := tx.LastDocumentNumber(context.Background(), ledger.DocPayment, "P-", "/26")
		require.NoError(t, err)
		assert.Equal(t, "P-017/26", got)
	})

	t.Run("None", func(t *testing.T) {
		mock.ExpectQuery("SELECT number FROM refunds").
			WithArgs("R-%", "%/26").
			WillReturnRows(sqlmock.NewRows([]string{"number"}))

		got, err := tx.LastDocumentNumber(context.Background(), ledger.DocRefund, "R-", "/26")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("UnknownDocument", func(t *testing.T) {
		_, err := tx.LastDocumentNumber(context.Background(), "users; --", "X-", "/26")
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_CreateInvoice(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	id := uuid.New()
	rentalID := uuid.New()
	clientID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	inv := &ledger.Invoice{
		Number:   "FC-001/26",
		ClientID: clientID,
		RentalID: &rentalID,
		Amount:   300000,
		Status:   ledger.InvoicePending,
		Details:  &ledger.InvoiceDetails{Days: 3, DailyRate: 100000},
		Date:     date,
	}

	mock.ExpectQuery("INSERT INTO invoices").
		WithArgs("FC-001/26", clientID, uuid.NullUUID{UUID: rentalID, Valid: true}, int64(300000), int64(0),
			ledger.InvoicePending, []byte(`{"days":3,"daily_rate":100000}`), date).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), time.Now()))

	require.NoError(t, tx.CreateInvoice(context.Background(), inv))
	assert.Equal(t, id, inv.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_CreateInvoice_Duplicate(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO invoices").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "invoices_rental_id_key"})

	err := tx.CreateInvoice(context.Background(), &ledger.Invoice{Number: "FC-002/26"})
	assert.ErrorIs(t, err, apperr.ErrIntegrity)
}

func TestTx_LockInvoice(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	id := uuid.New()
	sourceID := uuid.New()

	t.Run("DecodesDetails", func(t *testing.T) {
		details := `{"note":"2 días excedidos de la renta Corolla","days_added":2,"source_rental_id":"` + sourceID.String() + `"}`

		mock.ExpectQuery("SELECT (.+) FROM invoices WHERE id = \\$1 FOR UPDATE").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(invoiceCols).
				AddRow(id.String(), "FCX-0001/26", uuid.NewString(), nil, int64(200000), int64(0), "Pendiente",
					[]byte(details), time.Now(), time.Now()))

		inv, err := tx.LockInvoice(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, inv.RentalID)
		require.NotNil(t, inv.Details)
		assert.Equal(t, "2", inv.Details.DaysAdded.String())
		assert.Equal(t, &sourceID, inv.Details.SourceRentalID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM invoices WHERE id = \\$1 FOR UPDATE").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(invoiceCols))

		_, err := tx.LockInvoice(context.Background(), id)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_UpdateInvoicePaid_CheckViolation(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectExec("UPDATE invoices SET paid_amount").
		WithArgs(int64(500), ledger.InvoicePaid, id).
		WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "invoices_check"})

	err := tx.UpdateInvoicePaid(context.Background(), id, 500, ledger.InvoicePaid)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTx_ReleasePayables(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	rentalID := uuid.New()
	paymentID := uuid.New()

	mock.ExpectExec("UPDATE account_payables").
		WithArgs(ledger.PayablePending, paymentID, rentalID, ledger.PayableHeld).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := tx.ReleasePayables(context.Background(), rentalID, paymentID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_ListRentalPayables(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	rentalID := uuid.New()
	paymentID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "rental_id", "type", "beneficiary_name", "beneficiary_dni", "amount", "status", "date",
		"released_by_payment_id", "created_at", "updated_at",
	}).
		AddRow(uuid.NewString(), rentalID.String(), "Propietario", "Marta", "001", int64(240000), "Retenido",
			time.Now(), nil, time.Now(), nil).
		AddRow(uuid.NewString(), rentalID.String(), "Comercial", "Luis", nil, int64(30000), "Pendiente",
			time.Now(), paymentID.String(), time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM account_payables\\s+WHERE rental_id = \\$1 AND status IN \\(\\$2, \\$3\\)").
		WithArgs(rentalID, ledger.PayableHeld, ledger.PayablePending).
		WillReturnRows(rows)

	aps, err := tx.ListRentalPayables(context.Background(), rentalID, []ledger.PayableStatus{ledger.PayableHeld, ledger.PayablePending})
	require.NoError(t, err)
	require.Len(t, aps, 2)
	assert.Nil(t, aps[0].ReleasedByPaymentID)
	assert.Equal(t, &paymentID, aps[1].ReleasedByPaymentID)
	assert.Empty(t, aps[1].BeneficiaryDNI)
	assert.NotNil(t, aps[1].UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_FindAgent(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	agentCols := []string{"id", "name", "dni", "phone", "email", "created_at"}
	id := uuid.New()

	t.Run("ByID", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM commercial_agents WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(agentCols).AddRow(id.String(), "Luis", "002", nil, nil, time.Now()))

		a, err := tx.FindAgent(context.Background(), id.String())
		require.NoError(t, err)
		assert.Equal(t, "002", a.DNI)
	})

	t.Run("ByName", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM commercial_agents WHERE name = \\$1").
			WithArgs("Luis").
			WillReturnRows(sqlmock.NewRows(agentCols).AddRow(id.String(), "Luis", nil, nil, nil, time.Now()))

		a, err := tx.FindAgent(context.Background(), "Luis")
		require.NoError(t, err)
		assert.Equal(t, id, a.ID)
	})

	t.Run("Unknown", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM commercial_agents WHERE name = \\$1").
			WithArgs("Pedro").
			WillReturnRows(sqlmock.NewRows(agentCols))

		_, err := tx.FindAgent(context.Background(), "Pedro")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_EnsureCategory(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery("INSERT INTO expense_categories (.+) ON CONFLICT \\(name\\)").
		WithArgs(ledger.CategoryRefunds, catalog.CategoryExpense, "Reembolsos y devoluciones a clientes").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "description", "created_at"}).
			AddRow(id.String(), ledger.CategoryRefunds, "Gasto", nil, time.Now()))

	c, err := tx.EnsureCategory(context.Background(), ledger.CategoryRefunds, "Reembolsos y devoluciones a clientes")
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, catalog.CategoryExpense, c.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_GetCategory(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM expense_categories\\s+WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "description", "created_at"}).
				AddRow(id.String(), "Combustible", "Gasto", "Gasolina y diésel", time.Now()))

		c, err := tx.GetCategory(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Combustible", c.Name)
		assert.Equal(t, "Gasolina y diésel", c.Description)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM expense_categories").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "description", "created_at"}))

		_, err := tx.GetCategory(context.Background(), id)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_RollbackAfterCommit(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	mock.ExpectCommit()

	require.NoError(t, tx.Commit())
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_SetVehicleStatus_NotFound(t *testing.T) {
	db, mock, tx := begin(t)
	defer db.Close()

	id := uuid.New()

	mock.ExpectExec("UPDATE vehicles SET status").
		WithArgs(catalog.VehicleAvailable, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := tx.SetVehicleStatus(context.Background(), id, catalog.VehicleAvailable)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStore_ListInvoices_Filters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	clientID := uuid.New()
	status := ledger.InvoicePartial
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM invoices WHERE 1=1 AND status = \\$1 AND client_id = \\$2 AND date >= \\$3 ORDER BY").
		WithArgs(ledger.InvoicePartial, clientID, start).
		WillReturnRows(sqlmock.NewRows(invoiceCols).
			AddRow(uuid.NewString(), "FC-003/26", clientID.String(), uuid.NewString(), int64(100), int64(40), "Parcial",
				nil, start, start))

	invoices, err := store.New(db).ListInvoices(context.Background(), ledger.InvoiceFilter{
		Status:    &status,
		ClientID:  &clientID,
		StartDate: &start,
	})
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Nil(t, invoices[0].Details)
	assert.Equal(t, int64(60), invoices[0].Outstanding())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_OldestOpenInvoice_None(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	clientID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM invoices\\s+WHERE client_id = \\$1 AND status <> \\$2").
		WithArgs(clientID, ledger.InvoicePaid).
		WillReturnRows(sqlmock.NewRows(invoiceCols))

	_, err = store.New(db).OldestOpenInvoice(context.Background(), clientID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStore_PaymentReferenceExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("cgd:1a2b").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := store.New(db).PaymentReferenceExists(context.Background(), "cgd:1a2b")
	require.NoError(t, err)
	assert.True(t, exists)
}
