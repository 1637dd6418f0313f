package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cartstream/analytics-sync/pkg/database"
)

// newTestDB opens a throwaway sqlite database with foreign keys enforced
// (required for the cascade tests) and bootstraps the replica schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "replica.db") + "?_foreign_keys=on"
	db, err := database.New(&database.Config{Driver: "sqlite", FilePath: dsn})
	require.NoError(t, err)
	require.NoError(t, Bootstrap(db))
	return db
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
