package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	t.Run("creates database file and directory", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

		db, err := Initialize(dbPath, Options{})
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		assert.FileExists(t, dbPath)
		assert.NoError(t, db.HealthCheck())
	})

	t.Run("applies pool defaults for zero options", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")

		db, err := Initialize(dbPath, Options{MaxConnections: 0, MaxIdleConnections: 0})
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		sqlDB, err := db.DB.DB()
		require.NoError(t, err)
		assert.NoError(t, sqlDB.Ping())
	})
}

func TestHealthCheck_NotInitialized(t *testing.T) {
	var db *DB
	assert.Error(t, db.HealthCheck())
}

func TestAutoMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	db, err := Initialize(dbPath, Options{})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	type widget struct {
		ID   uint `gorm:"primarykey"`
		Name string
	}

	require.NoError(t, db.AutoMigrate(&widget{}))
	assert.True(t, db.Migrator().HasTable(&widget{}))
}
