package repository

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	post := &models.Post{Title: "Test Post", Content: "Content", AuthorID: 3}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"published", "id"}).AddRow(false, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), post)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Create_ForeignKeyViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: `insert or update on table "comments" violates foreign key constraint "fk_posts_comments"`})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Comment{Content: "x", AuthorID: 1, PostID: 99})
	assert.True(t, models.HasCode(err, models.CodeConstraintViolation), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_Unavailable(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WithArgs(1, 1).
		WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))

	_, err := repo.GetByID(context.Background(), 1)
	assert.True(t, models.HasCode(err, models.CodeUnavailable), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete_LocksThenDeletesChildrenFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .*id.* FROM "posts" WHERE "posts"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`SELECT .*id.* FROM "comments" WHERE post_id = \$1 ORDER BY id ASC FOR UPDATE`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7).AddRow(8))
	mock.ExpectExec(`DELETE FROM "comments" WHERE id IN \(\$1,\$2\)`).
		WithArgs(7, 8).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "posts" WHERE "posts"."id" = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Affected)
	assert.Equal(t, []uint{7, 8}, res.Comments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_MissingRowCommitsNothing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .*id.* FROM "users" WHERE "users"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	res, err := repo.Delete(context.Background(), 9)
	require.NoError(t, err)
	assert.Zero(t, res.Affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_RollsBackOnChildFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .*id.* FROM "users" WHERE "users"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT .*id.* FROM "posts" WHERE author_id = \$1 ORDER BY id ASC FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(`SELECT .*id.* FROM "comments" WHERE .*author_id = \$1 OR post_id IN \(\$2\).* ORDER BY id ASC FOR UPDATE`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(`DELETE FROM "comments"`).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	res, err := repo.Delete(context.Background(), 1)
	assert.True(t, models.HasCode(err, models.CodeInternal), "got %v", err)
	assert.Zero(t, res.Affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
