package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/appprune/internal/output"
)

var (
	appsSizes bool

	appsCmd = &cobra.Command{
		Use:   "apps",
		Short: "List installed applications",
		Long: `List every application bundle found directly under /Applications and
~/Applications, sorted by path.

Bundle sizes are not shown by default because measuring them walks every
bundle; pass --sizes to include them.`,
		Example: `  # List applications
  appprune apps

  # Include bundle sizes
  appprune apps --sizes`,
		Args: cobra.NoArgs,
		RunE: runApps,
	}
)

func init() {
	appsCmd.Flags().BoolVar(&appsSizes, "sizes", false, "measure and show bundle sizes")
	RootCmd.AddCommand(appsCmd)
}

func runApps(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	apps, err := e.cleaner.ListApplications()
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	rows := make([]output.AppRow, len(apps))
	for i, app := range apps {
		rows[i] = output.AppRow{Name: app.Name(), Path: app.Path}
	}

	if appsSizes && len(apps) > 0 {
		paths := make([]string, len(apps))
		for i, app := range apps {
			paths[i] = app.Path
		}

		sizes, err := sizeWithSpinner(cmd.Context(), cmd.ErrOrStderr(), paths, e.settings.ScanWorkers)
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i].SizeBytes = sizes[i]
			rows[i].SizeKnown = true
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), output.RenderAppTable(rows))
	return nil
}
