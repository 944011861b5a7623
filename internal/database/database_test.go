package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sqliteConfig() *config.Config {
	return &config.Config{
		Env:          "test",
		DBDriver:     config.DriverSQLite,
		DBSQLitePath: ":memory:",
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_foreign_keys=1", SQLiteDSN(":memory:"))
	assert.Equal(t, "file:test.db?cache=shared&_foreign_keys=1", SQLiteDSN("file:test.db?cache=shared"))
	assert.Equal(t, "x.db?_foreign_keys=0", SQLiteDSN("x.db?_foreign_keys=0"))
}

func TestConnect_SQLiteAppliesSchemaAndPinsPool(t *testing.T) {
	db, err := Connect(sqliteConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	for _, m := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	assert.NoError(t, Ping(context.Background(), db))
}

func TestConnect_SQLiteEnforcesForeignKeys(t *testing.T) {
	db, err := Connect(sqliteConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	err = db.Create(&models.Post{Title: "orphan", Content: "x", AuthorID: 404}).Error
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err), "got %v", err)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSchema_CascadeBackstop(t *testing.T) {
	db, err := Connect(sqliteConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	owner := models.User{Name: "Owner", Email: "o@x.com", Age: 40}
	other := models.User{Name: "Other", Email: "t@x.com", Age: 22}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&other).Error)
	post := models.Post{Title: "P", Content: "c", AuthorID: owner.ID}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "by other", AuthorID: other.ID, PostID: post.ID}).Error)

	// Raw delete bypasses the repository; the schema alone must cascade.
	require.NoError(t, db.Exec("DELETE FROM users WHERE id = ?", owner.ID).Error)

	var posts, comments int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, posts)
	assert.Zero(t, comments)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", fmt.Errorf("insert: %w", gorm.ErrForeignKeyViolated), true},
		{"postgres 23503", &pgconn.PgError{Code: "23503"}, true},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, false},
		{"sqlite extended code", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, true},
		{"sqlite not null", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, false},
		{"message fallback", errors.New("FOREIGN KEY constraint failed"), true},
		{"unrelated", errors.New("syntax error"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsForeignKeyViolation(tt.err))
		})
	}
}

func TestIsUnavailable(t *testing.T) {
	assert.False(t, IsUnavailable(nil))
	assert.True(t, IsUnavailable(fmt.Errorf("query: %w", context.DeadlineExceeded)))
	assert.True(t, IsUnavailable(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")))
	assert.False(t, IsUnavailable(gorm.ErrRecordNotFound))
}

func TestReadSnapshot_SeesCommittedRows(t *testing.T) {
	db, err := Connect(sqliteConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, db.Create(&models.User{Name: "A", Email: "a@x.com", Age: 1}).Error)

	var n int64
	err = ReadSnapshot(context.Background(), db, func(tx *gorm.DB) error {
		return tx.Model(&models.User{}).Count(&n).Error
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
