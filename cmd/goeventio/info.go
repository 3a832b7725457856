package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cta-observatory/goeventio/bytesource"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/stream"
)

func newInfoCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "print_object_information <file>",
		Short: "Print a frequency table of (type, version) across the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPrintObjectInformation(os.Stdout, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the frequency table as JSON instead of a text table")

	return cmd
}

type typeVersionKey struct {
	Type    format.ObjectType
	Version uint16
}

type typeVersionCount struct {
	Type    string `json:"type"`
	Version uint16 `json:"version"`
	Count   int    `json:"count"`
}

func runPrintObjectInformation(w io.Writer, path string, asJSON bool) error {
	src, err := bytesource.OpenFile(path)
	if err != nil {
		return err
	}
	defer src.Close() //nolint:errcheck

	rd := stream.NewReader(src)
	counts := make(map[typeVersionKey]int)

	var walk func(seq func(yield func(*stream.ObjectHandle) bool))
	walk = func(seq func(yield func(*stream.ObjectHandle) bool)) {
		for h := range seq {
			key := typeVersionKey{Type: format.ObjectType(h.Header.Type), Version: h.Header.Version}
			counts[key]++

			if h.Header.OnlySubObjects {
				walk(h.SubObjects())
			}
		}
	}

	walk(rd.Objects())

	if err := rd.Err(); err != nil {
		return err
	}

	rows := make([]typeVersionCount, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, typeVersionCount{Type: k.Type.String(), Version: k.Version, Count: n})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Type != rows[j].Type {
			return rows[i].Type < rows[j].Type
		}

		return rows[i].Version < rows[j].Version
	})

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rows)
	}

	for _, r := range rows {
		fmt.Fprintf(w, "%-24s v%-3d %d\n", r.Type, r.Version, r.Count)
	}

	return nil
}
