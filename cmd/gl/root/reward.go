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

func newRewardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reward",
		Aliases: []string{"shop"},
		Short:   "Reward shop: listings you can buy with XP",
	}
	cmd.AddCommand(
		newRewardAddCmd(),
		newRewardRmCmd(),
		newRewardListCmd(),
		newRewardBuyCmd(),
	)
	return cmd
}

func newRewardAddCmd() *cobra.Command {
	var cost string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a reward listing",
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

			r, err := a.Store().AddReward(engine.RewardInput{Text: strings.Join(args, " "), Cost: cost})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconGift+" Listed"), r.Text, ui.Gold.Render(fmt.Sprintf("%d XP", r.Cost)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&cost, "cost", "c", "", "Price in XP (default 0)")

	return cmd
}

func newRewardRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a listing (bought items stay in the inventory)",
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

			id, err := rewardID(a, args[0])
			if err != nil {
				return err
			}
			a.Store().DeleteReward(id)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconTrash+" Removed"))
			return nil
		},
	}

	return cmd
}

func newRewardListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List reward listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			points := a.Store().Points()
			list := a.Store().Rewards()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGift, "Reward Shop"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", fmt.Sprintf("%d XP", points)))
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(empty)"))
				return nil
			}
			for i, r := range list {
				icon := ui.IconGift
				if points < r.Cost {
					icon = ui.IconLock
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%3d. %s %s %s %s\n", i+1, icon, r.Text, ui.Gold.Render(fmt.Sprintf("%d XP", r.Cost)), ui.Muted.Render(shortID(r.ID)))
			}
			return nil
		},
	}

	return cmd
}

func newRewardBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <id>",
		Short: "Buy a reward with XP",
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

			id, err := rewardID(a, args[0])
			if err != nil {
				return err
			}
			res, err := a.Store().BuyReward(id)
			if err != nil {
				return err
			}
			if res.Locked {
				return fmt.Errorf("%s locked: costs %d XP, you have %d", ui.IconLock, res.Cost, res.Points)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconGift+" Bought"), res.Item.Text)
			printPopups(cmd.OutOrStdout(), a.Store())
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", fmt.Sprintf("%d XP", res.Points)))
			return nil
		},
	}

	return cmd
}

func rewardID(a *app.App, arg string) (string, error) {
	list := a.Store().Rewards()
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	return resolveID("reward", ids, arg)
}
