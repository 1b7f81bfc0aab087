package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/appprune/internal/cleaner"
	"github.com/blackwell-systems/appprune/internal/output"
)

// computeSizes sizes every path with at most workers walks in flight. The
// result is index-aligned with paths. Cancelling ctx stops scheduling new
// walks; the returned error is then ctx's.
func computeSizes(ctx context.Context, paths []string, workers int) ([]int64, error) {
	sizes := make([]int64, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sizes[i] = cleaner.SizeOf(p)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sizes, nil
}

// sizeWithSpinner runs computeSizes behind a spinner on w.
func sizeWithSpinner(ctx context.Context, w io.Writer, paths []string, workers int) ([]int64, error) {
	spinner := output.NewSpinner(fmt.Sprintf("Measuring %d items", len(paths)))
	spinner.SetWriter(w)
	spinner.Start()
	sizes, err := computeSizes(ctx, paths, workers)
	spinner.Stop()
	return sizes, err
}

func itemRows(paths []string, sizes []int64) []output.ItemRow {
	rows := make([]output.ItemRow, len(paths))
	for i, p := range paths {
		rows[i] = output.ItemRow{Path: p, SizeBytes: sizes[i]}
	}
	return rows
}

func sumSizes(sizes []int64) int64 {
	var total int64
	for _, s := range sizes {
		total += s
	}
	return total
}

// confirm prompts on out and reads one line from in. Only "y" or "yes"
// (any case) confirm; EOF declines.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
