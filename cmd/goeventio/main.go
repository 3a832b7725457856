// Command goeventio is a thin CLI wrapper around the goeventio library
// (spec §6 CLI surface). No decoding logic lives here; every subcommand
// opens a file with bytesource.OpenFile and drives stream/registry/the
// façades the same way a library caller would.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "goeventio",
		Short: "Inspect and extract EventIO container files",
		Long:  "goeventio reads CORSIKA IACT and sim_telarray EventIO container files without writing them back out.",
	}

	root.AddCommand(
		newStructureCmd(),
		newInfoCmd(),
		newSimtelHistoryCmd(),
		newSimtelMetaparamsCmd(),
		newHistogramsCmd(),
		newCutFileCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
