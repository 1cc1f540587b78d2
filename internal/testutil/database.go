package testutil

import (
	"testing"

	"blog-go/internal/database"
	"blog-go/internal/database/migrations"
)

// NewTestSQLiteStore creates a new in-memory SQLite store with schema applied.
// The store is automatically closed when the test completes.
func NewTestSQLiteStore(t *testing.T) *database.SQLStore {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := migrations.MigrateUp(sqlDB, migrations.SQLite); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	store := database.NewSQLiteStoreFromDB(sqlDB)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
