package commands

import (
	"fmt"

	"inkwell/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd(flags *globalFlags) *cobra.Command {
	opts := seed.Options{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load fake users, posts and comments",
		Long: `Load fake data built with gofakeit.

Examples:
  inkwellctl seed --users 50 --posts 200 --comments 500
  inkwellctl seed --clean --seed 42     # reproducible data set
  inkwellctl seed --dry-run             # log what would be created`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd.Context(), withoutRedis(flags), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			sum, err := seed.Seed(cmd.Context(), rt.db, opts)
			if err != nil {
				return err
			}
			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), sum)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d posts, %d comments\n",
				sum.Users, sum.Posts, sum.Comments)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Users, "users", 50, "Number of users to create")
	cmd.Flags().IntVar(&opts.Posts, "posts", 200, "Number of posts to create")
	cmd.Flags().IntVar(&opts.Comments, "comments", 500, "Number of comments to create")
	cmd.Flags().BoolVar(&opts.Clean, "clean", false, "Delete existing rows first")
	cmd.Flags().BoolVar(&opts.Factory.DryRun, "dry-run", false, "Build records without writing them")
	cmd.Flags().Int64Var(&opts.Factory.RandSeed, "seed", 0, "Random seed (0 picks one)")
	cmd.Flags().IntVar(&opts.Factory.MaxDays, "max-days", 30, "Spread creation times over this many days")
	return cmd
}
