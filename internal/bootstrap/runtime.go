// Package bootstrap wires the shared runtime (database, Redis, optional seed
// data) used by the server and the admin CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/rdb"
	"inkwell/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// ApplySchema runs migrations or AutoMigrate per DB_SCHEMA_MODE.
	ApplySchema bool
	// SkipRedis leaves the Redis client nil.
	SkipRedis bool
	// Seed, when non-nil, loads fake data into an empty database.
	Seed *seed.Options
}

// InitRuntime connects to DB and Redis and optionally seeds an empty database.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: opts.ApplySchema})
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	var r *redis.Client
	if !opts.SkipRedis {
		rdb.InitRedis(cfg.RedisURL)
		r = rdb.GetClient()
	}

	if opts.Seed != nil {
		if err := seedIfEmpty(ctx, db, *opts.Seed); err != nil {
			return nil, nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	return db, r, nil
}

func seedIfEmpty(ctx context.Context, db *gorm.DB, opts seed.Options) error {
	var users int64
	if err := db.WithContext(ctx).Table("users").Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		log.Printf("database already has %d users, skipping seed", users)
		return nil
	}
	_, err := seed.Seed(ctx, db, opts)
	return err
}
