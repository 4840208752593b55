package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gamifylife/internal/app"
	"gamifylife/internal/engine"
	"gamifylife/internal/ui"
)

func newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "challenge",
		Aliases: []string{"ch"},
		Short:   "Daily and weekly challenges",
	}
	cmd.AddCommand(
		newChallengeAddCmd(),
		newChallengeDoCmd(),
		newChallengeRmCmd(),
		newChallengeListCmd(),
	)
	return cmd
}

func newChallengeAddCmd() *cobra.Command {
	var reward string
	var kind string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a challenge",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("title is required")
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

			c, err := a.Store().AddChallenge(engine.ChallengeInput{
				Title:  strings.Join(args, " "),
				Reward: reward,
				Type:   kind,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.Good.Render(ui.IconChallenge+" Added"), ui.Muted.Render("["+c.Type+"]"), c.Title, ui.Gold.Render(fmt.Sprintf("+%d", c.Reward)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&reward, "reward", "r", "", "XP reward (default 50)")
	cmd.Flags().StringVarP(&kind, "type", "t", "daily", "Challenge type (daily|weekly)")

	return cmd
}

func newChallengeDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a challenge, or reopen it if already completed",
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

			id, err := challengeID(a, args[0])
			if err != nil {
				return err
			}
			res := a.Store().ToggleChallenge(id)
			label := ui.Good.Render(ui.IconDone + " Completed")
			if !res.Completed {
				label = ui.Warn.Render(ui.IconUndo + " Reopened")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", label, ui.Muted.Render(fmt.Sprintf("(streak %d)", res.Streak)))
			printPopups(cmd.OutOrStdout(), a.Store())
			printLevelChange(cmd.OutOrStdout(), res)
			return nil
		},
	}

	return cmd
}

func newChallengeRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a challenge",
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

			id, err := challengeID(a, args[0])
			if err != nil {
				return err
			}
			a.Store().DeleteChallenge(id)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconTrash+" Deleted"))
			return nil
		},
	}

	return cmd
}

func newChallengeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list := a.Store().Challenges()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconChallenge, "Challenges"))
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
				return nil
			}
			for i, c := range list {
				line := fmt.Sprintf("%3d. %s %s %s %s", i+1, ui.Muted.Render("["+c.Type+"]"), c.Title, ui.StatusText(c.Completed, false), ui.Gold.Render(fmt.Sprintf("+%d", c.Reward)))
				if c.Streak > 0 {
					line += " " + ui.Muted.Render(fmt.Sprintf("streak %d", c.Streak))
				}
				fmt.Fprintln(cmd.OutOrStdout(), line+" "+ui.Muted.Render(shortID(c.ID)))
			}
			return nil
		},
	}

	return cmd
}

func challengeID(a *app.App, arg string) (string, error) {
	list := a.Store().Challenges()
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	return resolveID("challenge", ids, arg)
}
