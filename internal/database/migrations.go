package database

import (
	"context"
	"database/sql"
)

// RunMigrations creates the database schema if it does not exist yet.
//
// board_columns.sort_order and board_cards.position deliberately carry no
// UNIQUE constraint: the renumbering engine shifts ranges row by row inside
// a transaction, and SQLite enforces uniqueness per statement rather than
// at commit. Denseness is maintained by the engine, and indexed for the
// board read queries instead.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS units (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		unit_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (unit_id) REFERENCES units(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS cases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		unit_id INTEGER NOT NULL,
		number TEXT NOT NULL,
		title TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (unit_id) REFERENCES units(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS office_tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		unit_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (unit_id) REFERENCES units(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS board_columns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		unit_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '#6B7280',
		sort_order INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (unit_id) REFERENCES units(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS board_cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		column_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		case_id INTEGER,
		task_id INTEGER,
		priority TEXT NOT NULL DEFAULT 'medium'
			CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
		due_date DATETIME,
		responsible_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (column_id) REFERENCES board_columns(id),
		FOREIGN KEY (case_id) REFERENCES cases(id) ON DELETE SET NULL,
		FOREIGN KEY (task_id) REFERENCES office_tasks(id) ON DELETE SET NULL,
		FOREIGN KEY (responsible_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_board_columns_unit ON board_columns(unit_id, sort_order);
	CREATE INDEX IF NOT EXISTS idx_board_cards_column ON board_cards(column_id, position);
	CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
	CREATE INDEX IF NOT EXISTS idx_cases_unit ON cases(unit_id);
	CREATE INDEX IF NOT EXISTS idx_office_tasks_unit ON office_tasks(unit_id);
	`

	_, err := db.ExecContext(ctx, schema)
	return err
}
