package commands

import (
	"fmt"
	"strconv"

	"inkwell/internal/notifications"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/spf13/cobra"
)

func newDeleteUserCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <id>",
		Short: "Delete a user and everything they wrote",
		Long: `Delete a user together with their posts, the comments on those posts
and every comment they wrote elsewhere. A user.deleted event is published
when Redis is reachable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			ctx, corrID := observability.EnsureCorrelationID(cmd.Context())
			rt, err := openRuntime(ctx, flags, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			var publisher notifications.Publisher
			if rt.redis != nil {
				publisher = notifications.NewNotifier(rt.redis, rt.cfg.EventsChannel)
			}

			users := service.NewUserService(repository.NewUserRepository(rt.db), publisher)
			res, err := users.DeleteUser(ctx, uint(id))
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %d (%d posts, %d comments), correlation %s\n",
				id, len(res.Posts), len(res.Comments), corrID)
			return nil
		},
	}
}
