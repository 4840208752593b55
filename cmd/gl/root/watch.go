package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gamifylife/internal/app"
	"gamifylife/internal/engine"
	"gamifylife/internal/notify"
	"gamifylife/internal/ui"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run expiration sweeps, daily resets and due-time reminders in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			reminders := notify.NotifierFunc(func(r notify.Reminder) {
				fmt.Fprintf(out, "%s %s %s\n", ui.Warn.Render(ui.IconClock+" "+r.Title), r.Body, ui.Muted.Render(r.At.Format("15:04")))
			})
			expired := func(res engine.ExpireResult) {
				fmt.Fprintf(out, "%s %d quest(s) failed, -%d XP\n", ui.Bad.Render(ui.IconSkull+" Time's up!"), len(res.Expired), res.Penalty)
			}

			a, cleanup, err := openApp(ctx, app.WithNotifier(reminders), app.WithExpiryHook(expired))
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintf(out, "%s %s\n", ui.Heading(ui.IconBolt, "Watching"), ui.Muted.Render(fmt.Sprintf("(every %s, ctrl+c to stop)", cfg.PollInterval())))
			if err := a.Run(ctx); err != nil {
				return err
			}
			logger.Info("watch stopped", zap.Int("points", a.Store().Points()))
			return nil
		},
	}

	return cmd
}
