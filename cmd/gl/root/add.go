package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gamifylife/internal/engine"
	"gamifylife/internal/ui"
)

func newAddCmd() *cobra.Command {
	var due string
	var reward string
	var penalty string
	var repeat string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a quest (one-off or repeating)",
		Example: `  gl add "Morning run" --reward 20 --repeat weekdays
  gl add "Submit report" --due 17:00 --penalty 15`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("text is required")
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

			t, err := a.Store().AddTask(engine.TaskInput{
				Text:       strings.Join(args, " "),
				DueTime:    due,
				Penalty:    penalty,
				Reward:     reward,
				RepeatDays: engine.ParseRepeatDays(repeat),
			})
			if err != nil {
				return err
			}

			line := fmt.Sprintf("%s %s %s %s", ui.Good.Render(ui.IconPlus+" Added"), ui.KindIcon(t.IsRepeating()), t.Text, ui.Muted.Render(shortID(t.ID)))
			fmt.Fprintln(cmd.OutOrStdout(), line)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Reward", fmt.Sprintf("%d XP", t.Reward)))
			if t.DueTimeMins != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Due", fmt.Sprintf("%s (penalty %d)", t.DueDisplay, t.Penalty)))
			} else if due != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s %q is not HH:MM, no due time set", ui.IconWarn, due)))
			}
			if t.IsRepeating() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Repeats", formatDays(t.RepeatDays)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "Due time today (HH:MM); missing it fails the quest")
	cmd.Flags().StringVarP(&reward, "reward", "r", "", "XP reward (default 10)")
	cmd.Flags().StringVarP(&penalty, "penalty", "p", "", "XP penalty when the due time passes (default 0)")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Repeat days (mon,wed,fri | weekdays | weekends | daily)")

	return cmd
}

var dayAbbrev = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func formatDays(days []int) string {
	if len(days) == 7 {
		return "every day"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(dayAbbrev) {
			names = append(names, dayAbbrev[d])
		}
	}
	return strings.Join(names, ",")
}
