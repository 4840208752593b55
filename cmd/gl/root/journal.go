package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gamifylife/internal/engine"
	"gamifylife/internal/ui"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"journal"},
		Short:   "Daily journal (first entry of the day earns a bonus)",
	}
	cmd.AddCommand(newLogAddCmd(), newLogRmCmd(), newLogListCmd())
	return cmd
}

func newLogAddCmd() *cobra.Command {
	var in engine.LogInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a journal entry",
		Example: `  gl log add --learned "bubbletea tick commands" --missed "gym"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := a.Store().AddLogEntry(in)
			if errors.Is(err, engine.ErrEmptyEntry) {
				return errors.New("write at least one of --learned, --missed or --notes")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconJournal+" Logged"), res.Entry.Date, res.Entry.Timestamp)
			printPopups(cmd.OutOrStdout(), a.Store())
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Learned, "learned", "l", "", "What you learned")
	cmd.Flags().StringVarP(&in.Missed, "missed", "m", "", "What you missed")
	cmd.Flags().StringVarP(&in.Notes, "notes", "n", "", "Anything else")

	return cmd
}

func newLogRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a journal entry",
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

			logs := a.Store().Logs()
			ids := make([]string, len(logs))
			for i := range logs {
				ids[i] = logs[i].ID
			}
			id, err := resolveID("entry", ids, args[0])
			if err != nil {
				return err
			}
			a.Store().DeleteLogEntry(id)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconTrash+" Deleted"))
			return nil
		},
	}

	return cmd
}

func newLogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show journal entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			logs := a.Store().Logs()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconJournal, "Journal"))
			if len(logs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no entries)"))
				return nil
			}
			for i, e := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d. %s %s %s\n", i+1, ui.H2.Render(e.Date), e.Timestamp, ui.Muted.Render(shortID(e.ID)))
				if e.Learned != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "     %s\n", ui.LabelValue("Learned", e.Learned))
				}
				if e.Missed != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "     %s\n", ui.LabelValue("Missed", e.Missed))
				}
				if e.Notes != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "     %s\n", ui.LabelValue("Notes", e.Notes))
				}
			}
			return nil
		},
	}

	return cmd
}
