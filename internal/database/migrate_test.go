package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Paired(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}

	for _, e := range entries {
		name := e.Name()

		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %q", name)
		}
	}

	assert.Equal(t, ups, downs)
}

func TestMigrations_LedgerTables(t *testing.T) {
	body, err := fs.ReadFile(migrations, "migrations/0001_init.up.sql")
	require.NoError(t, err)

	for _, table := range []string{
		"rentals", "invoices", "payments", "account_payables",
		"refunds", "expenses", "expense_categories", "document_sequences",
	} {
		assert.Contains(t, string(body), "CREATE TABLE "+table+" (")
	}
}

func TestMigrate_NilDB(t *testing.T) {
	assert.Error(t, Migrate(nil))
}
