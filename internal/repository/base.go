// Package repository implements the entity store on top of gorm.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Table names, used for metrics and span labels.
const (
	tableUsers    = "users"
	tablePosts    = "posts"
	tableComments = "comments"
)

// startOp opens a span and a latency timer for one store call. The returned
// func must be deferred with a pointer to the method's named error.
func startOp(ctx context.Context, db *gorm.DB, method, table string) (context.Context, func(*error)) {
	done := observability.TrackQuery(method, table)
	ctx, span := observability.StartStoreSpan(ctx, db.Dialector.Name(), table, method)
	return ctx, func(errp *error) {
		done()
		observability.EndSpan(span, *errp)
	}
}

// storeError classifies a raw gorm/driver error into an AppError. Errors that
// already are AppErrors pass through.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case database.IsForeignKeyViolation(err):
		return models.NewConstraintViolationError(err)
	case database.IsUnavailable(err):
		return models.NewUnavailableError(err)
	default:
		return models.NewInternalError(err)
	}
}

// lookupError maps a missing row to NOT_FOUND and everything else through storeError.
func lookupError(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return storeError(err)
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// forUpdate row-locks the selected rows until the transaction ends. SQLite
// drops the clause; its single connection already serializes writers.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockRow locks the row with id in model's table. found is false when the row
// does not exist (or was deleted by a transaction that committed first).
func lockRow(tx *gorm.DB, model interface{}, id uint) (found bool, err error) {
	err = forUpdate(tx).Select("id").First(model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// applyPatch writes cols to the row with id and returns the fresh row in dest.
// An empty patch writes nothing.
func applyPatch(tx *gorm.DB, dest interface{}, id uint, cols map[string]any) error {
	if err := tx.First(dest, id).Error; err != nil {
		return err
	}
	if len(cols) == 0 {
		return nil
	}
	if err := tx.Model(dest).Updates(cols).Error; err != nil {
		return err
	}
	return tx.First(dest, id).Error
}
