package commands

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/spf13/cobra"
)

type statusReport struct {
	Rows    map[string]int64 `json:"rows"`
	Schema  schemaReport     `json:"schema"`
	Redis   string           `json:"redis"`
	Checked time.Time        `json:"checkedAt"`
}

type schemaReport struct {
	Mode    string `json:"mode"`
	Driver  string `json:"driver"`
	Applied int    `json:"applied"`
	Pending int    `json:"pending"`
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show row counts and schema state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := openRuntime(ctx, flags, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			queries := service.NewQueryService(
				repository.NewUserRepository(rt.db),
				repository.NewPostRepository(rt.db),
				repository.NewCommentRepository(rt.db),
			)
			counts, err := queries.Counts(ctx)
			if err != nil {
				return fmt.Errorf("count rows: %w", err)
			}

			schema, err := database.GetSchemaStatus(ctx, rt.db, rt.cfg)
			if err != nil {
				return fmt.Errorf("schema status failed: %w", err)
			}

			report := statusReport{
				Rows: counts,
				Schema: schemaReport{
					Mode:    schema.Mode,
					Driver:  schema.Driver,
					Applied: len(schema.AppliedVersions),
					Pending: len(schema.PendingMigrations),
				},
				Redis:   redisState(ctx, rt),
				Checked: time.Now().UTC(),
			}

			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "users=%d posts=%d comments=%d\n",
				counts["users"], counts["posts"], counts["comments"])
			fmt.Fprintf(out, "schema mode=%s driver=%s applied=%d pending=%d\n",
				report.Schema.Mode, report.Schema.Driver, report.Schema.Applied, report.Schema.Pending)
			fmt.Fprintf(out, "redis=%s\n", report.Redis)
			return nil
		},
	}
}

func redisState(ctx context.Context, rt *runtime) string {
	if rt.redis == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rt.redis.Ping(ctx).Err(); err != nil {
		return "unhealthy"
	}
	return "healthy"
}
