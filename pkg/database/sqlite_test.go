package database

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(Config{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	db, err := New(Config{Path: path, MaxOpenConns: 1, MaxIdleConns: 1}, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())
}

func TestMigrator_Run(t *testing.T) {
	db := testDB(t)
	migrator := NewMigrator(db, zap.NewNop())

	require.NoError(t, migrator.Run())

	for _, table := range []string{"request_forms", "request_form_items"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrator_RunIsIdempotent(t *testing.T) {
	db := testDB(t)
	migrator := NewMigrator(db, zap.NewNop())

	require.NoError(t, migrator.Run())
	require.NoError(t, migrator.Run())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	db := testDB(t)
	require.NoError(t, NewMigrator(db, zap.NewNop()).Run())

	err := db.WithTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO request_forms (
				id, application_date, payee, payment_method, payment_method_other,
				requesting_unit, requesting_unit_other, total_amount,
				bank_book_image, created_at
			) VALUES ('RFX', '', 'x', '現金', '', '其他', 'y', '0', NULL, CURRENT_TIMESTAMP)
		`); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM request_forms").Scan(&count))
	assert.Equal(t, 0, count, "failed transaction must leave no rows")
}
