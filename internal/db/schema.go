package db

import "fmt"

// The schema is created on first open and never versioned; every statement
// is idempotent.
const schemaSQL = `
-- Clients
CREATE TABLE IF NOT EXISTS clients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    national_id TEXT NOT NULL UNIQUE,
    phone TEXT,
    inactive INTEGER NOT NULL DEFAULT 0
);

-- Services performed for clients
CREATE TABLE IF NOT EXISTS services (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    description TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'PENDING',
    entry_date TEXT NOT NULL,
    estimated_date TEXT,
    cost REAL NOT NULL DEFAULT 0,
    client_id INTEGER NOT NULL REFERENCES clients(id),
    inactive INTEGER NOT NULL DEFAULT 0
);

-- Indexes
CREATE INDEX IF NOT EXISTS idx_services_client ON services(client_id);
CREATE INDEX IF NOT EXISTS idx_services_status ON services(status);
CREATE INDEX IF NOT EXISTS idx_services_entry ON services(entry_date);
`

// EnsureSchema creates the tables and indexes if they do not exist yet.
func (db *DB) EnsureSchema() error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
