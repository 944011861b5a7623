package database

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// ReadSnapshot runs fn inside a read-only transaction so that every query fn
// issues sees the same committed state. On postgres that is a REPEATABLE READ
// snapshot; SQLite transactions are already serialized.
func ReadSnapshot(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db.Dialector.Name() == "postgres" {
		return db.WithContext(ctx).Transaction(fn, &sql.TxOptions{
			Isolation: sql.LevelRepeatableRead,
			ReadOnly:  true,
		})
	}
	return db.WithContext(ctx).Transaction(fn)
}
