// Package output provides terminal output utilities for appprune.
//
// This package includes:
//   - Table rendering for applications, candidate items, deletion outcomes and snapshots
//   - A spinner for scans, which report only on completion
//
// Colour is applied only when stdout is a terminal and NO_COLOR is unset.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/appprune/internal/cleaner"
	"github.com/blackwell-systems/appprune/internal/store"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given colour if color is enabled,
// otherwise returns the plain text.
func colorize(c color.Color, text string) string {
	if IsColorEnabled() {
		return c.Sprint(text)
	}
	return text
}

// AppRow is one line of the application table. Size is shown only when
// SizeKnown is set, since sizing every bundle is slow.
type AppRow struct {
	Name      string
	Path      string
	SizeBytes int64
	SizeKnown bool
}

// ItemRow is a candidate path with its size.
type ItemRow struct {
	Path      string
	SizeBytes int64
}

// RenderAppTable renders installed applications in the given order.
func RenderAppTable(apps []AppRow) string {
	if len(apps) == 0 {
		return "No applications found.\n"
	}

	showSize := false
	for _, app := range apps {
		if app.SizeKnown {
			showSize = true
			break
		}
	}

	var sb strings.Builder

	if showSize {
		sb.WriteString(fmt.Sprintf("%-4s %-28s %-12s %s\n", "#", "Application", "Size", "Path"))
		sb.WriteString(strings.Repeat("─", 90))
	} else {
		sb.WriteString(fmt.Sprintf("%-4s %-28s %s\n", "#", "Application", "Path"))
		sb.WriteString(strings.Repeat("─", 77))
	}
	sb.WriteString("\n")

	for i, app := range apps {
		if showSize {
			size := "—"
			if app.SizeKnown {
				size = cleaner.FormatSize(app.SizeBytes)
			}
			sb.WriteString(fmt.Sprintf("%-4d %-28s %-12s %s\n", i+1, truncate(app.Name, 28), size, app.Path))
		} else {
			sb.WriteString(fmt.Sprintf("%-4d %-28s %s\n", i+1, truncate(app.Name, 28), app.Path))
		}
	}

	sb.WriteString(fmt.Sprintf("\n%d applications\n", len(apps)))
	return sb.String()
}

// RenderItemTable renders candidate paths with their sizes and a total line.
func RenderItemTable(items []ItemRow) string {
	if len(items) == 0 {
		return "Nothing found.\n"
	}

	var sb strings.Builder
	var total int64

	sb.WriteString(fmt.Sprintf("%-12s %s\n", "Size", "Path"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, item := range items {
		total += item.SizeBytes
		sb.WriteString(fmt.Sprintf("%-12s %s\n", cleaner.FormatSize(item.SizeBytes), item.Path))
	}

	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-12s %d items\n", cleaner.FormatSize(total), len(items)))
	return sb.String()
}

// RenderOutcomes renders one line per deletion attempt and a summary.
func RenderOutcomes(outcomes []cleaner.Outcome) string {
	var sb strings.Builder
	failed := 0

	for _, o := range outcomes {
		if o.OK {
			sb.WriteString(fmt.Sprintf("  %s %s\n", colorize(color.Green, "✓"), o.Path))
			continue
		}
		failed++
		sb.WriteString(fmt.Sprintf("  %s %s: %s\n", colorize(color.Red, "✗"), o.Path, o.Message))
	}

	if failed > 0 {
		sb.WriteString(colorize(color.Yellow, fmt.Sprintf("\n⚠  %d of %d items could not be deleted\n", failed, len(outcomes))))
	}
	return sb.String()
}

// RenderSnapshotTable renders a table of snapshots in the order given
// (the store returns newest first).
func RenderSnapshotTable(snapshots []*store.Snapshot) string {
	if len(snapshots) == 0 {
		return "No snapshots found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-16s %-5s %-12s %-7s %-12s %s\n",
		"ID", "Created", "Kind", "Mode", "Items", "Size", "Target"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, snap := range snapshots {
		target := snap.Target
		if target == "" {
			target = "—"
		}
		sb.WriteString(fmt.Sprintf("%-5d %-16s %-5s %-12s %-7d %-12s %s\n",
			snap.ID,
			humanize.Time(snap.CreatedAt),
			snap.Kind,
			snap.Mode,
			snap.ItemCount,
			cleaner.FormatSize(snap.TotalBytes),
			truncate(target, 30)))
	}

	return sb.String()
}

// RenderSnapshotItems renders the items of one snapshot with their recorded outcome.
func RenderSnapshotItems(snap *store.Snapshot, items []*store.SnapshotItem) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Snapshot %d (%s, %s", snap.ID, snap.Kind, snap.Mode))
	if snap.Target != "" {
		sb.WriteString(", " + snap.Target)
	}
	sb.WriteString(fmt.Sprintf(") created %s\n", snap.CreatedAt.Local().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Manifest: %s\n\n", snap.SnapshotPath))

	if len(items) == 0 {
		sb.WriteString("No items recorded.\n")
		return sb.String()
	}

	for _, item := range items {
		status := "?"
		detail := "not attempted"
		if item.OK != nil {
			if *item.OK {
				status = colorize(color.Green, "✓")
				detail = ""
			} else {
				status = colorize(color.Red, "✗")
				detail = ""
				if item.Message != nil {
					detail = *item.Message
				}
			}
		}

		line := fmt.Sprintf("  %s %-12s %s", status, cleaner.FormatSize(item.SizeBytes), item.Path)
		if detail != "" {
			line += " (" + detail + ")"
		}
		sb.WriteString(line + "\n")
	}

	return sb.String()
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
