package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/appprune/internal/cleaner"
	"github.com/blackwell-systems/appprune/internal/snapshots"
)

var (
	uninstallFlags     deleteFlags
	uninstallLeftovers bool

	uninstallCmd = &cobra.Command{
		Use:   "uninstall <app>",
		Short: "Delete an application and its associated files",
		Long: `Delete an application bundle together with every associated entry in
~/Library (support files, caches, preferences, saved state, logs, cookies,
containers, group containers and WebKit data).

Each item is deleted independently: a failure is reported and the remaining
items are still processed. Before anything is deleted a snapshot manifest of
the item list is written, unless --no-snapshot is given.

With --leftovers the bundle may already be gone (for example after it was
dragged to the Trash); only the associated files are deleted.`,
		Example: `  # Preview
  appprune uninstall Slack --dry-run

  # Move everything to the Trash
  appprune uninstall Slack --trash

  # Clean up after a bundle that was already removed
  appprune uninstall Slack --leftovers --yes`,
		Args: cobra.ExactArgs(1),
		RunE: runUninstall,
	}
)

func init() {
	uninstallFlags.register(uninstallCmd)
	uninstallCmd.Flags().BoolVar(&uninstallLeftovers, "leftovers", false, "Delete only associated files; the bundle may already be gone")
	RootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	app, err := e.cleaner.FindApplication(args[0])
	switch {
	case err == nil:
	case uninstallLeftovers && errors.Is(err, cleaner.ErrAppNotFound):
		app = e.cleaner.RemovedApp(args[0])
	default:
		return err
	}

	var paths []string
	var scanErr error
	if uninstallLeftovers {
		paths, scanErr = e.cleaner.FindAssociated(app)
	} else {
		paths, scanErr = e.cleaner.Candidates(app)
	}
	if scanErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: scan incomplete, only the items found are listed: %v\n", scanErr)
	}

	sizes, err := sizeWithSpinner(cmd.Context(), cmd.ErrOrStderr(), paths, e.settings.ScanWorkers)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Uninstalling %s\n\n", app.Name())

	return runDeletion(cmd, e, &uninstallFlags, deletionPlan{
		kind:   snapshots.KindApp,
		target: app.Name(),
		paths:  paths,
		sizes:  sizes,
	})
}
