package commands

import (
	"fmt"
	"strconv"

	"inkwell/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Run database migrations to keep the schema in sync with the models.

Subcommands:
  up      - Apply pending SQL migrations
  auto    - Apply the schema with AutoMigrate
  status  - Show migration status
  down    - Roll back one migration by version`,
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending SQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd.Context(), withoutRedis(flags), false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := database.RunMigrations(cmd.Context(), rt.db); err != nil {
				return fmt.Errorf("sql migrations failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sql migrations applied")
			return nil
		},
	}

	autoCmd := &cobra.Command{
		Use:   "auto",
		Short: "Apply the schema with AutoMigrate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd.Context(), withoutRedis(flags), false)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.cfg.DBSchemaMode = database.SchemaModeAuto
			if err := database.ApplySchema(cmd.Context(), rt.db, rt.cfg); err != nil {
				return fmt.Errorf("auto schema apply failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "automigrations applied")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd.Context(), withoutRedis(flags), false)
			if err != nil {
				return err
			}
			defer rt.Close()

			status, err := database.GetSchemaStatus(cmd.Context(), rt.db, rt.cfg)
			if err != nil {
				return fmt.Errorf("schema status failed: %w", err)
			}
			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), status)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mode=%s env=%s driver=%s run_sql=%t run_auto=%t applied=%d pending=%d\n",
				status.Mode, status.Environment, status.Driver, status.WillRunSQL,
				status.WillRunAutoMigrate, len(status.AppliedVersions), len(status.PendingMigrations))
			for _, m := range status.PendingMigrations {
				fmt.Fprintf(out, "pending: %06d_%s\n", m.Version, m.Name)
			}
			return nil
		},
	}

	downCmd := &cobra.Command{
		Use:   "down <version>",
		Short: "Roll back one migration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}

			rt, err := openRuntime(cmd.Context(), withoutRedis(flags), false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := database.RollbackMigration(cmd.Context(), rt.db, version); err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back migration %d\n", version)
			return nil
		},
	}

	migrateCmd.AddCommand(upCmd, autoCmd, statusCmd, downCmd)
	return migrateCmd
}

// withoutRedis copies flags with Redis disabled; schema work never needs it.
func withoutRedis(flags *globalFlags) *globalFlags {
	f := *flags
	f.noRedis = true
	return &f
}
