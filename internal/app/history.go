package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/appprune/internal/output"
	"github.com/blackwell-systems/appprune/internal/snapshots"
	"github.com/blackwell-systems/appprune/internal/store"
)

var (
	historyPruneDays int

	historyCmd = &cobra.Command{
		Use:   "history [snapshot-id]",
		Short: "Show past deletion runs",
		Long: `List recorded deletion runs, newest first, or show the items of one run
with their per-item result.

Snapshots are a record of what was deleted; they cannot restore anything.
Items moved to the Trash can be put back from Finder.

--prune-days removes snapshot manifest files older than the given number of
days. The history database keeps its rows.`,
		Example: `  # List runs
  appprune history

  # Show one run
  appprune history 12

  # Remove manifests older than 90 days
  appprune history --prune-days 90`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVar(&historyPruneDays, "prune-days", 0, "remove snapshot manifests older than N days")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	st, err := openExistingStore(e.settings.DBPath)
	if errors.Is(err, store.ErrNotInitialized) {
		fmt.Fprint(out, output.RenderSnapshotTable(nil))
		return nil
	}
	if err != nil {
		return err
	}
	defer st.Close()

	mgr := snapshots.New(st, e.settings.SnapshotDir)

	if historyPruneDays > 0 {
		removed, err := mgr.CleanupOldSnapshots(time.Duration(historyPruneDays) * 24 * time.Hour)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d snapshot manifests older than %d days\n", removed, historyPruneDays)
		return nil
	}

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid snapshot ID %q: %w", args[0], err)
		}

		snap, err := st.GetSnapshot(id)
		if err != nil {
			return err
		}
		items, err := st.GetSnapshotItems(id)
		if err != nil {
			return err
		}

		fmt.Fprint(out, output.RenderSnapshotItems(snap, items))
		return nil
	}

	snaps, err := mgr.ListSnapshots()
	if err != nil {
		if errors.Is(err, store.ErrNotInitialized) {
			fmt.Fprint(out, output.RenderSnapshotTable(nil))
			return nil
		}
		return err
	}

	fmt.Fprint(out, output.RenderSnapshotTable(snaps))
	return nil
}
