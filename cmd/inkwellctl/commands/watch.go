package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"inkwell/internal/notifications"

	"github.com/spf13/cobra"
)

func newWatchCmd(flags *globalFlags) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream domain events from Redis",
		Long: `Print every event published on the events channel as one JSON line.

Examples:
  inkwellctl watch
  inkwellctl watch --type user.deleted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.noRedis {
				return errors.New("watch needs Redis")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := openRuntime(ctx, flags, false)
			if err != nil {
				return err
			}
			defer rt.Close()
			if rt.redis == nil {
				return fmt.Errorf("redis at %s is not reachable", rt.cfg.RedisURL)
			}

			return watchEvents(ctx, notifications.NewNotifier(rt.redis, rt.cfg.EventsChannel), filter, cmd)
		},
	}

	cmd.Flags().StringVar(&filter, "type", "", "Only print events of this type")
	return cmd
}

func watchEvents(ctx context.Context, n *notifications.Notifier, filter string, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	events := make(chan notifications.Event, 64)
	err := n.Subscribe(ctx, func(ev notifications.Event) {
		if filter != "" && ev.Type != filter {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s\n", n.Channel())

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := writeEventLine(out, ev); err != nil {
				return err
			}
		}
	}
}
