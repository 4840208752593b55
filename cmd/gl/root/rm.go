package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gamifylife/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a quest (no XP change)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := taskID(a, args[0])
			if err != nil {
				return err
			}
			t, _ := a.Store().Task(id)
			a.Store().DeleteTask(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render(ui.IconTrash+" Deleted"), t.Text)
			return nil
		},
	}

	return cmd
}
