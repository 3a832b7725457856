package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cta-observatory/goeventio/bytesource"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/stream"
)

// newHistogramsCmd implements plot_histograms at the container level only:
// spec.md scopes the histogram sub-format's statistical semantics (and any
// rendering) out of the core, so this reports the HistogramBlock objects
// present rather than drawing them.
func newHistogramsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot_histograms <file>",
		Short: "List the histogram blocks (type 100) a file carries",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPlotHistograms(os.Stdout, args[0])
		},
	}
}

func runPlotHistograms(w io.Writer, path string) error {
	src, err := bytesource.OpenFile(path)
	if err != nil {
		return err
	}
	defer src.Close() //nolint:errcheck

	rd := stream.NewReader(src)

	count := 0

	for h := range rd.Objects() {
		if format.ObjectType(h.Header.Type) != format.TypeHistogramBlock {
			continue
		}

		count++
		fmt.Fprintf(w, "histogram block v%d, %d bytes (statistical contents out of scope)\n", h.Header.Version, h.Header.Length)
	}

	if err := rd.Err(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%d histogram block(s) total\n", count)

	return nil
}
