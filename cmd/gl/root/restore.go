package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gamifylife/internal/ui"
)

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "undo <id>",
		Aliases: []string{"restore"},
		Short:   "Reopen a completed quest (undo completion)",
		Long: `Reopen a quest by undoing today's completion.

This will:
- Deduct the reward and the streak bonus that was awarded
- Step the streak back by one
- Mark the quest as open again

Use this to fix accidental completions.`,
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
			before, _ := a.Store().Task(id)
			if !before.Completed {
				return fmt.Errorf("quest %q is not completed", before.Text)
			}

			res := a.Store().ToggleTask(id)
			name := fmt.Sprintf("%s %s", ui.KindIcon(before.IsRepeating()), before.Text)
			line := fmt.Sprintf("%s %s %s", ui.Warn.Render(ui.IconUndo+" Reopened"), name, ui.Muted.Render(fmt.Sprintf("(%d XP)", res.Amount)))
			fmt.Fprintln(cmd.OutOrStdout(), line)
			printPopups(cmd.OutOrStdout(), a.Store())
			printLevelChange(cmd.OutOrStdout(), res)
			return nil
		},
	}

	return cmd
}
