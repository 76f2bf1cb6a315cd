// Package testutil provides shared database fixtures for tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/juridesk/juridesk/internal/database"
)

// SetupTestDB creates an in-memory database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	// A single connection keeps the in-memory database alive and mirrors
	// the production single-writer pool.
	db.SetMaxOpenConns(1)

	if err := database.RunMigrations(ctx, db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

// CreateTestUnit creates a unit and returns its ID.
func CreateTestUnit(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO units (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("Failed to create test unit: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestUser creates a user in a unit and returns its ID. The password
// hash is a placeholder; auth tests create their own users via the auth
// service.
func CreateTestUser(t *testing.T, db *sql.DB, unitID int, name, email string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO users (unit_id, name, email, password_hash) VALUES (?, ?, ?, 'x')",
		unitID, name, email)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestColumn creates a column with the next sort order and returns
// its ID.
func CreateTestColumn(t *testing.T, db *sql.DB, unitID int, name string) int {
	t.Helper()
	ctx := context.Background()
	var maxOrder int
	err := db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(sort_order), 0) FROM board_columns WHERE unit_id = ?", unitID).Scan(&maxOrder)
	if err != nil {
		t.Fatalf("Failed to get max sort order: %v", err)
	}
	result, err := db.ExecContext(ctx,
		"INSERT INTO board_columns (unit_id, name, sort_order) VALUES (?, ?, ?)",
		unitID, name, maxOrder+1)
	if err != nil {
		t.Fatalf("Failed to create test column: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestCard creates a card at the end of a column and returns its ID.
func CreateTestCard(t *testing.T, db *sql.DB, columnID, responsibleID int, title string) int {
	t.Helper()
	ctx := context.Background()
	var maxPos int
	err := db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), 0) FROM board_cards WHERE column_id = ?", columnID).Scan(&maxPos)
	if err != nil {
		t.Fatalf("Failed to get max position: %v", err)
	}
	result, err := db.ExecContext(ctx,
		"INSERT INTO board_cards (column_id, title, responsible_id, position) VALUES (?, ?, ?, ?)",
		columnID, title, responsibleID, maxPos+1)
	if err != nil {
		t.Fatalf("Failed to create test card: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestCase creates a case and returns its ID.
func CreateTestCase(t *testing.T, db *sql.DB, unitID int, number, title string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO cases (unit_id, number, title) VALUES (?, ?, ?)", unitID, number, title)
	if err != nil {
		t.Fatalf("Failed to create test case: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestOfficeTask creates an office task and returns its ID.
func CreateTestOfficeTask(t *testing.T, db *sql.DB, unitID int, title string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO office_tasks (unit_id, title) VALUES (?, ?)", unitID, title)
	if err != nil {
		t.Fatalf("Failed to create test office task: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// SetCardDueDate sets a card's due date directly.
func SetCardDueDate(t *testing.T, db *sql.DB, cardID int, due time.Time) {
	t.Helper()
	if _, err := db.ExecContext(context.Background(),
		"UPDATE board_cards SET due_date = ? WHERE id = ?", due, cardID); err != nil {
		t.Fatalf("Failed to set due date: %v", err)
	}
}

// SetCardPriority sets a card's priority directly.
func SetCardPriority(t *testing.T, db *sql.DB, cardID int, priority string) {
	t.Helper()
	if _, err := db.ExecContext(context.Background(),
		"UPDATE board_cards SET priority = ? WHERE id = ?", priority, cardID); err != nil {
		t.Fatalf("Failed to set priority: %v", err)
	}
}
