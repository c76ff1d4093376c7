package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"petmatch-be/internal/database"

	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh SQLite database in a temp directory and applies
// the migrations.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db, filepath.Join("..", "..", "migrations")))
	return db
}
