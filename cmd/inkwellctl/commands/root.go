// Package commands implements the inkwellctl command tree.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"inkwell/internal/bootstrap"
	"inkwell/internal/config"
	"inkwell/internal/database"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// loadConfig is replaced in tests.
var loadConfig = config.LoadConfig

type globalFlags struct {
	jsonOutput bool
	noRedis    bool
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "inkwellctl",
		Short: "Inkwell database maintenance",
		Long: `inkwellctl manages the Inkwell schema and data.

Subcommands:
  migrate      - Apply, inspect or roll back schema migrations
  seed         - Load fake users, posts and comments
  status       - Show row counts and schema state
  delete-user  - Delete a user and everything they wrote
  watch        - Stream domain events from Redis`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "Output in JSON format")
	root.PersistentFlags().BoolVar(&flags.noRedis, "no-redis", false, "Do not connect to Redis")

	root.AddCommand(
		newMigrateCmd(flags),
		newSeedCmd(flags),
		newStatusCmd(flags),
		newDeleteUserCmd(flags),
		newWatchCmd(flags),
	)
	return root
}

type runtime struct {
	cfg   *config.Config
	db    *gorm.DB
	redis *redis.Client
}

func (r *runtime) Close() {
	_ = database.Close(r.db)
	if r.redis != nil {
		_ = r.redis.Close()
	}
}

func openRuntime(ctx context.Context, flags *globalFlags, applySchema bool) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, r, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{
		ApplySchema: applySchema,
		SkipRedis:   flags.noRedis,
	})
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, db: db, redis: r}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeEventLine(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
