package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gamifylife/internal/ui"
)

func newInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Rewards you bought and have not used yet",
	}
	cmd.AddCommand(newInventoryListCmd(), newInventoryRedeemCmd())
	return cmd
}

func newInventoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List purchased items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items := a.Store().Inventory()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBox, "Inventory"))
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(empty)"))
				return nil
			}
			for i, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d. %s %s %s\n", i+1, it.Text, ui.Muted.Render("bought "+it.PurchaseDate), ui.Muted.Render(shortID(it.InstanceID)))
			}
			return nil
		},
	}

	return cmd
}

func newInventoryRedeemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "redeem <id>",
		Aliases: []string{"use"},
		Short:   "Use up a purchased item",
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

			items := a.Store().Inventory()
			ids := make([]string, len(items))
			for i := range items {
				ids[i] = items[i].InstanceID
			}
			id, err := resolveID("item", ids, args[0])
			if err != nil {
				return err
			}
			item, ok := a.Store().RedeemInventoryItem(id)
			if !ok {
				return fmt.Errorf("item %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconSparkle+" Enjoy"), item.Text)
			return nil
		},
	}

	return cmd
}
