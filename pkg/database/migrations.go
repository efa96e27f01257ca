package database

import (
	"fmt"

	"go.uber.org/zap"
)

// Migration is one versioned schema change
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered schema history. Append only; never edit an
// applied entry.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_request_forms",
		SQL: `
			CREATE TABLE IF NOT EXISTS request_forms (
				id TEXT PRIMARY KEY,
				application_date TEXT NOT NULL DEFAULT '',
				payee TEXT NOT NULL,
				payment_method TEXT NOT NULL,
				payment_method_other TEXT NOT NULL DEFAULT '',
				requesting_unit TEXT NOT NULL,
				requesting_unit_other TEXT NOT NULL DEFAULT '',
				total_amount TEXT NOT NULL,
				bank_book_image BLOB,
				created_at DATETIME NOT NULL
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_request_form_items",
		SQL: `
			CREATE TABLE IF NOT EXISTS request_form_items (
				form_id TEXT NOT NULL REFERENCES request_forms(id) ON DELETE CASCADE,
				seq INTEGER NOT NULL,
				project_type TEXT NOT NULL,
				expense_type TEXT NOT NULL,
				execution_time TEXT NOT NULL DEFAULT '',
				execution_content TEXT NOT NULL,
				amount TEXT NOT NULL,
				receipt_note TEXT NOT NULL DEFAULT '',
				PRIMARY KEY (form_id, seq)
			);
		`,
	},
}

// Migrator applies pending schema migrations
type Migrator struct {
	db     *DB
	logger *zap.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *DB, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// Run applies all pending migrations in version order
func (m *Migrator) Run() error {
	if err := m.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.appliedVersions()
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		m.logger.Info("Applying migration",
			zap.Int("version", migration.Version),
			zap.String("name", migration.Name))

		if _, err := m.db.Exec(migration.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}
		if _, err := m.db.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version, migration.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}
	return nil
}

func (m *Migrator) createMigrationsTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

func (m *Migrator) appliedVersions() (map[int]bool, error) {
	rows, err := m.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}
