// Package testutil provides test utilities for database setup.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// Schema is the mappings table as created by the sqlite migrations.
// Kept in sync with internal/infrastructure/sqlite/migrations.
const Schema = `
CREATE TABLE mappings (
	name TEXT PRIMARY KEY,
	uid BLOB NOT NULL
) WITHOUT ROWID;
`

// NewTestDB creates an in-memory SQLite database with the mappings schema.
// The caller is responsible for closing the database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}
