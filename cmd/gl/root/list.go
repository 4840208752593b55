package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gamifylife/internal/engine"
	"gamifylife/internal/storage"
	"gamifylife/internal/ui"
)

func newListCmd() *cobra.Command {
	var today bool
	var done bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s := a.Store()
			weekday := engine.Weekday(s.Now(), s.Location())
			tasks := s.Tasks()
			title := "Quests"
			if today {
				title = "Today's quests"
			}
			doneToday := map[string]bool{}
			if done {
				title = "Completed today"
				for _, t := range s.CompletedToday() {
					doneToday[t.ID] = true
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconQuest, title))

			shown := 0
			for i, t := range tasks {
				if today && !t.ScheduledOn(weekday) {
					continue
				}
				if done && !doneToday[t.ID] {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), taskLine(i+1, t))
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&today, "today", "t", false, "Only quests scheduled today")
	cmd.Flags().BoolVar(&done, "done", false, "Only quests completed today")

	return cmd
}

func taskLine(n int, t storage.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d. %s %s %s", n, ui.KindIcon(t.IsRepeating()), t.Text, ui.StatusText(t.Completed, t.Failed))
	fmt.Fprintf(&b, " %s", ui.Gold.Render(fmt.Sprintf("+%d", t.Reward)))
	if t.DueDisplay != "" {
		fmt.Fprintf(&b, " %s %s", ui.IconClock, t.DueDisplay)
		if t.Penalty > 0 {
			fmt.Fprintf(&b, " %s", ui.Bad.Render(fmt.Sprintf("-%d", t.Penalty)))
		}
	}
	if t.IsRepeating() {
		fmt.Fprintf(&b, " %s", ui.Muted.Render(formatDays(t.RepeatDays)))
	}
	if t.Streak > 0 {
		fmt.Fprintf(&b, " %s", ui.Muted.Render(fmt.Sprintf("streak %d", t.Streak)))
	}
	fmt.Fprintf(&b, " %s", ui.Muted.Render(shortID(t.ID)))
	return b.String()
}
