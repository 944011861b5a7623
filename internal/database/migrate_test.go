package database

import (
	"context"
	"regexp"
	"testing"
	"testing/fstest"

	"inkwell/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestEmbeddedMigrations(t *testing.T) {
	all := GetMigrations()
	require.NotEmpty(t, all)
	first := all[0]
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, "000001_create_core_tables", first.String())
	assert.Contains(t, first.UpScript, "ON DELETE CASCADE")
	assert.Contains(t, first.DownScript, "DROP TABLE IF EXISTS comments")
	assert.NotNil(t, GetMigrationByVersion(1))
	assert.Nil(t, GetMigrationByVersion(999))
}

func TestLoadMigrations(t *testing.T) {
	t.Run("sorted by version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"migrations/000002_b.up.sql":   {Data: []byte("B")},
			"migrations/000002_b.down.sql": {Data: []byte("-B")},
			"migrations/000001_a.up.sql":   {Data: []byte("A")},
			"migrations/000001_a.down.sql": {Data: []byte("-A")},
		}
		got, err := LoadMigrations(fsys)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].Name)
		assert.Equal(t, "-B", got[1].DownScript)
	})

	t.Run("missing down script", func(t *testing.T) {
		fsys := fstest.MapFS{"migrations/000001_a.up.sql": {Data: []byte("A")}}
		_, err := LoadMigrations(fsys)
		assert.Error(t, err)
	})

	t.Run("bad version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"migrations/abc_a.up.sql":   {Data: []byte("A")},
			"migrations/abc_a.down.sql": {Data: []byte("-A")},
		}
		_, err := LoadMigrations(fsys)
		assert.Error(t, err)
	})
}

func TestValidateAppliedVersions(t *testing.T) {
	registered := []Migration{{Version: 1}, {Version: 2}}
	assert.NoError(t, validateAppliedVersions(nil, registered))
	assert.NoError(t, validateAppliedVersions([]int{1, 2}, registered))
	err := validateAppliedVersions([]int{1, 7}, registered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000007")
}

func TestRunMigrations_AppliesPending(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS migration_logs")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "version" FROM "migration_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "migration_logs"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, RunMigrations(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_SkipsApplied(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS migration_logs")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "version" FROM "migration_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))

	require.NoError(t, RunMigrations(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		mode     string
		dialect  string
		wantSQL  bool
		wantAuto bool
		wantErr  bool
	}{
		{"sqlite always auto", "test", SchemaModeSQL, "sqlite", false, true, false},
		{"postgres hybrid dev", "development", "", "postgres", true, true, false},
		{"postgres hybrid prod", "production", "", "postgres", true, false, false},
		{"postgres sql", "development", SchemaModeSQL, "postgres", true, false, false},
		{"postgres auto refused in prod", "production", SchemaModeAuto, "postgres", false, false, true},
		{"unknown mode", "development", "yolo", "postgres", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Env: tt.env, DBSchemaMode: tt.mode}
			runSQL, runAuto, err := schemaPolicy(cfg, tt.dialect)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, runSQL)
			assert.Equal(t, tt.wantAuto, runAuto)
		})
	}
}
