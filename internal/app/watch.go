package app

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/appprune/internal/cleaner"
	"github.com/blackwell-systems/appprune/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report leftovers when applications are removed",
	Long: `Watch /Applications and ~/Applications. When an application bundle is
removed or moved away by any means (for example dragged to the Trash), list
the files it left behind in ~/Library and suggest the command to delete them.

The watcher never deletes anything. It runs in the foreground until
interrupted with Ctrl+C or SIGTERM.`,
	Example: `  appprune watch`,
	Args:    cobra.NoArgs,
	RunE:    runWatch,
}

func init() {
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var mu sync.Mutex

	w, err := watcher.New(e.cleaner, func(app cleaner.Application, leftovers []string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprint(out, formatLeftovers(app, leftovers))
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", strings.Join(e.cleaner.Paths().AppRoots, ", "))
	return w.Run(cmd.Context())
}

// formatLeftovers renders one watcher report.
func formatLeftovers(app cleaner.Application, leftovers []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n⚠  %s was removed but left %d items behind:\n", app.Name(), len(leftovers))
	for _, p := range leftovers {
		fmt.Fprintf(&sb, "  %s\n", p)
	}
	fmt.Fprintf(&sb, "Remove them with: appprune uninstall %q --leftovers\n", app.Name())

	return sb.String()
}
