package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gamifylife/internal/app"
	"gamifylife/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a quest",
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
			if t.Failed {
				return fmt.Errorf("quest %q failed today and is locked", t.Text)
			}
			if t.Completed {
				return fmt.Errorf("quest %q is already done (use `gl undo`)", t.Text)
			}

			res := a.Store().ToggleTask(id)
			line := fmt.Sprintf("%s %s %s %s", ui.Good.Render(ui.IconDone+" Completed"), ui.KindIcon(t.IsRepeating()), t.Text, ui.Muted.Render(fmt.Sprintf("(streak %d)", res.Streak)))
			fmt.Fprintln(cmd.OutOrStdout(), line)
			printPopups(cmd.OutOrStdout(), a.Store())
			printLevelChange(cmd.OutOrStdout(), res)
			return nil
		},
	}

	return cmd
}

func taskID(a *app.App, arg string) (string, error) {
	tasks := a.Store().Tasks()
	ids := make([]string, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
	}
	return resolveID("quest", ids, arg)
}
