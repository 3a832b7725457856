package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cta-observatory/goeventio/bytesource"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/stream"
)

func newStructureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print_structure <file>",
		Short: "Recursively dump a container's object structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPrintStructure(os.Stdout, args[0])
		},
	}
}

// structNode is a header-only snapshot of one object, buffered so sibling
// runs can be grouped before printing (spec §6: "grouping ≥ 5 consecutive
// same-type sub-objects as 'and N more'" can't be decided mid-stream from a
// single pull iterator without looking ahead).
type structNode struct {
	typ      format.ObjectType
	version  uint16
	length   uint64
	children []structNode
}

func runPrintStructure(w io.Writer, path string) error {
	src, err := bytesource.OpenFile(path)
	if err != nil {
		return err
	}
	defer src.Close() //nolint:errcheck

	rd := stream.NewReader(src)
	nodes := drainStructure(rd.Objects())

	if err := rd.Err(); err != nil {
		return err
	}

	printStructureNodes(w, nodes, 0)

	return nil
}

func drainStructure(seq func(yield func(*stream.ObjectHandle) bool)) []structNode {
	var nodes []structNode

	for h := range seq {
		n := structNode{typ: format.ObjectType(h.Header.Type), version: h.Header.Version, length: h.Header.Length}

		if h.Header.OnlySubObjects {
			n.children = drainStructure(h.SubObjects())
		}

		nodes = append(nodes, n)
	}

	return nodes
}

const groupThreshold = 5

func printStructureNodes(w io.Writer, nodes []structNode, depth int) {
	indent := strings.Repeat("  ", depth)

	for i := 0; i < len(nodes); {
		j := i
		for j < len(nodes) && nodes[j].typ == nodes[i].typ {
			j++
		}

		run := j - i
		printStructureNode(w, indent, nodes[i], depth)

		if run >= groupThreshold {
			fmt.Fprintf(w, "%s... and %d more %s\n", indent, run-1, nodes[i].typ)
		} else {
			for k := i + 1; k < j; k++ {
				printStructureNode(w, indent, nodes[k], depth)
			}
		}

		i = j
	}
}

func printStructureNode(w io.Writer, indent string, n structNode, depth int) {
	fmt.Fprintf(w, "%s%s v%d (%d bytes)\n", indent, n.typ, n.version, n.length)

	if len(n.children) > 0 {
		printStructureNodes(w, n.children, depth+1)
	}
}
