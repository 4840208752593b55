package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gamifylife/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP and today's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s := a.Store()
			into := s.XPTowardsNext()
			threshold := s.LevelThreshold()
			done, total := s.TodayQuests()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Player Status"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", s.Level()))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("XP", fmt.Sprintf("%d (%d/%d into level, %.0f%%, %d to go)", s.Points(), into, threshold, s.LevelProgress(), threshold-into)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Today", fmt.Sprintf("%d/%d quests", done, total)))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			open := 0
			for _, c := range s.Challenges() {
				if !c.Completed {
					open++
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconChallenge+" Challenges"))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %d %s\n", ui.Key.Render("Open:"), open, ui.Muted.Render(fmt.Sprintf("(of %d)", len(s.Challenges()))))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconGift+" Rewards"))
			affordable := 0
			for _, r := range s.Rewards() {
				if s.Points() >= r.Cost {
					affordable++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %d %s\n", ui.Key.Render("Affordable:"), affordable, ui.Muted.Render(fmt.Sprintf("(of %d)", len(s.Rewards()))))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %d\n", ui.Key.Render("Inventory:"), len(s.Inventory()))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			journaled := ui.Bad.Render("not yet")
			for _, e := range s.Logs() {
				if e.Date == s.Today() {
					journaled = ui.Good.Render("yes")
					break
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconJournal+" Journal"))
			fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n", ui.Key.Render("Written today:"), journaled)
			return nil
		},
	}

	return cmd
}
