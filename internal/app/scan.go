package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/appprune/internal/output"
)

var scanCmd = &cobra.Command{
	Use:   "scan <app>",
	Short: "Show an application's bundle and associated files",
	Long: `Show the bundle of an application together with every entry in ~/Library
whose name contains the application's name, with sizes and a total.

The application may be given by display name ("Google Chrome"), by name in
any case ("google chrome"), or by full bundle path. Nothing is deleted.`,
	Example: `  appprune scan Slack
  appprune scan /Applications/Slack.app`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	app, err := e.cleaner.FindApplication(args[0])
	if err != nil {
		return err
	}

	paths, scanErr := e.cleaner.Candidates(app)
	if scanErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: scan incomplete: %v\n", scanErr)
	}

	sizes, err := sizeWithSpinner(cmd.Context(), cmd.ErrOrStderr(), paths, e.settings.ScanWorkers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n\n", app.Name(), app.Path)
	fmt.Fprint(out, output.RenderItemTable(itemRows(paths, sizes)))
	return nil
}
