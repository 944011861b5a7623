package seed

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(&config.Config{
		Env:          "test",
		DBDriver:     config.DriverSQLite,
		DBSQLitePath: ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestFactory_DryRun(t *testing.T) {
	f := NewFactory(nil, FactoryOptions{DryRun: true, MaxDays: 30, RandSeed: 7})
	ctx := context.Background()

	u, err := f.CreateUser(ctx, func(u *models.User) { u.Name = "Carlos" })
	require.NoError(t, err)
	assert.Equal(t, "Carlos", u.Name)
	assert.NotZero(t, u.ID)
	assert.GreaterOrEqual(t, u.Age, 18)

	p, err := f.CreatePost(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.AuthorID)
	assert.NotEmpty(t, p.Title)
	assert.Greater(t, p.ID, u.ID)
	assert.WithinDuration(t, time.Now(), p.CreatedAt, 31*24*time.Hour)

	c, err := f.CreateComment(ctx, u, p)
	require.NoError(t, err)
	assert.Equal(t, p.ID, c.PostID)
	assert.Equal(t, u.ID, c.AuthorID)
}

func TestFactory_ReproducibleWithSeed(t *testing.T) {
	a := NewFactory(nil, FactoryOptions{DryRun: true, RandSeed: 42}).BuildUser()
	b := NewFactory(nil, FactoryOptions{DryRun: true, RandSeed: 42}).BuildUser()
	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, a.Email, b.Email)
}

func TestSeed_PersistsCounts(t *testing.T) {
	db := newTestDB(t)

	sum, err := Seed(context.Background(), db, Options{Users: 3, Posts: 5, Comments: 8})
	require.NoError(t, err)
	assert.Equal(t, Summary{Users: 3, Posts: 5, Comments: 8}, sum)

	assert.Equal(t, int64(3), count(t, db, &models.User{}))
	assert.Equal(t, int64(5), count(t, db, &models.Post{}))
	assert.Equal(t, int64(8), count(t, db, &models.Comment{}))
}

func TestSeed_CleanReplacesData(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := Seed(ctx, db, Options{Users: 2, Posts: 2, Comments: 2})
	require.NoError(t, err)

	_, err = Seed(ctx, db, Options{Users: 1, Posts: 1, Clean: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count(t, db, &models.User{}))
	assert.Equal(t, int64(1), count(t, db, &models.Post{}))
	assert.Equal(t, int64(0), count(t, db, &models.Comment{}))
}

func TestSeed_RejectsImpossibleCounts(t *testing.T) {
	ctx := context.Background()
	for name, opts := range map[string]Options{
		"posts without users":    {Posts: 1},
		"comments without posts": {Users: 1, Comments: 1},
		"negative":               {Users: -1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Seed(ctx, nil, opts)
			assert.Error(t, err)
		})
	}
}
