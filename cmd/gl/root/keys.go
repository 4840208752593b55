package root

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gamifylife/internal/storage"
	"gamifylife/internal/ui"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect the key-value store",
	}
	cmd.AddCommand(newDBKeysCmd(), newDBDropCmd())
	return cmd
}

func newDBKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List stored keys, including ones left by older versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			repo, closeDB, err := openKV(ctx)
			if err != nil {
				return err
			}
			defer closeDB()
			return listKeys(ctx, cmd.OutOrStdout(), repo, cfg.Storage.Key)
		},
	}
}

func newDBDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <key>",
		Short: "Delete a stale key (the active state key is refused)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("key is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			repo, closeDB, err := openKV(ctx)
			if err != nil {
				return err
			}
			defer closeDB()
			if err := dropKey(ctx, repo, cfg.Storage.Key, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render(ui.IconTrash+" Dropped"), args[0])
			return nil
		},
	}
}

// openKV opens the database without loading the game, so no sweeps run.
func openKV(ctx context.Context) (*storage.KVRepo, func(), error) {
	path, err := cfg.DBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewKVRepo(db), func() { _ = db.Close() }, nil
}

func listKeys(ctx context.Context, w io.Writer, repo *storage.KVRepo, active string) error {
	keys, err := repo.Keys(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, ui.Heading(ui.IconBox, "Keys"))
	if len(keys) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("(none)"))
		return nil
	}
	backup := storage.NewStateStore(repo, active).BackupKey()
	for _, k := range keys {
		switch k {
		case active:
			fmt.Fprintf(w, "  %s %s\n", k, ui.Good.Render("active"))
		case backup:
			fmt.Fprintf(w, "  %s %s\n", k, ui.Muted.Render("backup"))
		default:
			fmt.Fprintf(w, "  %s %s\n", k, ui.Warn.Render("stale"))
		}
	}
	return nil
}

func dropKey(ctx context.Context, repo *storage.KVRepo, active, key string) error {
	if key == active {
		return fmt.Errorf("refusing to drop the active state key %q", key)
	}
	_, found, err := repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("key %q not found", key)
	}
	return repo.Delete(ctx, key)
}
