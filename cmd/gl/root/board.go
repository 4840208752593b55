package root

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gamifylife/internal/app"
	"gamifylife/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
			defer stop()

			// Log lines would tear the alt screen.
			logger = logger.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))

			relay := tui.NewRelay()
			a, cleanup, err := openApp(ctx, app.WithNotifier(relay), app.WithExpiryHook(relay.Expired))
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, a, relay, cmd.OutOrStdout())
		},
	}

	return cmd
}
