package app

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/appprune/internal/cleaner"
	"github.com/blackwell-systems/appprune/internal/output"
	"github.com/blackwell-systems/appprune/internal/snapshots"
)

var (
	junkCmd = &cobra.Command{
		Use:   "junk",
		Short: "List junk items (caches, logs, trash)",
		Long: `List the immediate children of ~/Library/Caches, ~/Library/Logs and
~/.Trash with their sizes and a total. Nothing is deleted; use 'appprune
clean' for that.`,
		Args: cobra.NoArgs,
		RunE: runJunk,
	}

	cleanFlags deleteFlags

	cleanCmd = &cobra.Command{
		Use:   "clean",
		Short: "Delete junk items (caches, logs, trash)",
		Long: `Delete every immediate child of ~/Library/Caches, ~/Library/Logs and
~/.Trash. Each item is deleted independently and failures are reported.

Moving items to the Trash (--trash) leaves the Trash itself untouched.`,
		Example: `  # Preview
  appprune clean --dry-run

  # Clean without prompting
  appprune clean --yes`,
		Args: cobra.NoArgs,
		RunE: runClean,
	}
)

func init() {
	cleanFlags.register(cleanCmd)
	RootCmd.AddCommand(junkCmd)
	RootCmd.AddCommand(cleanCmd)
}

// junkPlan lists and sizes the junk items.
func junkPlan(cmd *cobra.Command, e *env) ([]string, []int64, error) {
	items, scanErr := e.cleaner.ListJunk()
	if scanErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: scan incomplete, only the items found are listed: %v\n", scanErr)
	}

	sizes, err := sizeWithSpinner(cmd.Context(), cmd.ErrOrStderr(), items, e.settings.ScanWorkers)
	if err != nil {
		return nil, nil, err
	}
	return items, sizes, nil
}

func runJunk(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	items, sizes, err := junkPlan(cmd, e)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), output.RenderItemTable(itemRows(items, sizes)))
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	items, sizes, err := junkPlan(cmd, e)
	if err != nil {
		return err
	}

	// Trashing the contents of the Trash would only rename them in place.
	if cleanFlags.mode(e.mode) == cleaner.Recoverable {
		items, sizes = withoutTrash(items, sizes, e.cleaner.Paths().TrashDir)
	}

	return runDeletion(cmd, e, &cleanFlags, deletionPlan{
		kind:  snapshots.KindJunk,
		paths: items,
		sizes: sizes,
	})
}

// withoutTrash drops items that already live directly in trashDir.
func withoutTrash(items []string, sizes []int64, trashDir string) ([]string, []int64) {
	keptItems := make([]string, 0, len(items))
	keptSizes := make([]int64, 0, len(sizes))
	for i, item := range items {
		if filepath.Dir(item) == filepath.Clean(trashDir) {
			continue
		}
		keptItems = append(keptItems, item)
		keptSizes = append(keptSizes, sizes[i])
	}
	return keptItems, keptSizes
}
