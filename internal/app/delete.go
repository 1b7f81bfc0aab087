package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/appprune/internal/cleaner"
	"github.com/blackwell-systems/appprune/internal/output"
	"github.com/blackwell-systems/appprune/internal/snapshots"
	"github.com/blackwell-systems/appprune/internal/store"
)

// deleteFlags are shared by uninstall and clean.
type deleteFlags struct {
	trash      bool
	dryRun     bool
	yes        bool
	noSnapshot bool
}

func (f *deleteFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.trash, "trash", false, "Move items to the Trash instead of deleting them")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be deleted without deleting")
	cmd.Flags().BoolVar(&f.yes, "yes", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&f.noSnapshot, "no-snapshot", false, "Skip writing a snapshot manifest")
}

// mode resolves the effective delete mode; --trash wins over configuration.
func (f *deleteFlags) mode(configured cleaner.Mode) cleaner.Mode {
	if f.trash {
		return cleaner.Recoverable
	}
	return configured
}

// deletionPlan is a set of paths about to be deleted, in deletion order.
type deletionPlan struct {
	kind   string
	target string
	paths  []string
	sizes  []int64
}

// runDeletion shows the plan, asks for confirmation, writes a snapshot,
// deletes every item and reports per-item outcomes. Individual failures are
// reported, not returned.
func runDeletion(cmd *cobra.Command, e *env, flags *deleteFlags, plan deletionPlan) error {
	out := cmd.OutOrStdout()

	if len(plan.paths) == 0 {
		fmt.Fprintln(out, "Nothing to delete.")
		return nil
	}

	mode := flags.mode(e.mode)
	total := sumSizes(plan.sizes)

	fmt.Fprint(out, output.RenderItemTable(itemRows(plan.paths, plan.sizes)))

	fmt.Fprintf(out, "\nSummary:\n")
	fmt.Fprintf(out, "  Items: %d\n", len(plan.paths))
	fmt.Fprintf(out, "  Disk space to free: %s\n", cleaner.FormatSize(total))
	if mode == cleaner.Recoverable {
		fmt.Fprintf(out, "  Mode: move to Trash\n")
	} else {
		fmt.Fprintf(out, "  Mode: delete permanently\n")
	}
	if flags.noSnapshot {
		fmt.Fprintf(out, "  ⚠  Snapshot: SKIPPED (--no-snapshot)\n")
	} else {
		fmt.Fprintf(out, "  Snapshot: will be created\n")
	}
	fmt.Fprintln(out)

	if flags.dryRun {
		fmt.Fprintln(out, "Dry-run mode: nothing will be deleted.")
		return nil
	}

	if !flags.yes {
		prompt := fmt.Sprintf("Delete %d items?", len(plan.paths))
		if mode == cleaner.Recoverable {
			prompt = fmt.Sprintf("Move %d items to the Trash?", len(plan.paths))
		}
		if !confirm(cmd.InOrStdin(), out, prompt) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	var snapMgr *snapshots.Manager
	var snapshotID int64
	if !flags.noSnapshot {
		st, err := openStore(e.settings.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		snapMgr = snapshots.New(st, e.settings.SnapshotDir)

		items := make([]*snapshots.ItemSnapshot, len(plan.paths))
		for i, p := range plan.paths {
			items[i] = &snapshots.ItemSnapshot{Path: p, SizeBytes: plan.sizes[i]}
		}

		snapshotID, err = snapMgr.CreateSnapshot(plan.kind, plan.target, mode, items)
		if err != nil {
			return fmt.Errorf("failed to create snapshot: %w", err)
		}
		fmt.Fprintf(out, "Snapshot created: ID %d\n\n", snapshotID)
	}

	outcomes := e.cleaner.DeleteAll(plan.paths, mode)

	if snapMgr != nil {
		if err := snapMgr.RecordOutcomes(snapshotID, outcomes); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}

	fmt.Fprint(out, output.RenderOutcomes(outcomes))

	var freed int64
	deleted := 0
	for i, o := range outcomes {
		if o.OK {
			deleted++
			freed += plan.sizes[i]
		}
	}
	fmt.Fprintf(out, "\n✓ Deleted %d of %d items, freed %s\n", deleted, len(outcomes), cleaner.FormatSize(freed))

	if snapMgr != nil {
		fmt.Fprintf(out, "Details: appprune history %d\n", snapshotID)
	}

	return nil
}

// openStore opens the history database, creating it and its schema on first use.
func openStore(path string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// openExistingStore opens the history database without creating it.
// It returns store.ErrNotInitialized when the file does not exist.
func openExistingStore(path string) (*store.Store, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNotInitialized
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return st, nil
}
