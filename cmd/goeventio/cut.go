package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cta-observatory/goeventio/bytesource"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objheader"
	"github.com/cta-observatory/goeventio/stream"
)

func newCutFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cut_file <in> <out> <n>",
		Short: "Copy the first N events of a container file",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return err
			}

			return runCutFile(args[0], args[1], n)
		},
	}
}

// runCutFile copies whole top-level objects verbatim (sync marker, header,
// payload — re-read from the source by byte range rather than re-serialized,
// so byte order and any header quirks survive unchanged) until n events have
// been copied. An event boundary is an EventEndBlock (CORSIKA IACT files) or
// a CentralEvent (sim_telarray files, which carries no closing marker of its
// own — the facade's Open Question resolution in DESIGN.md applies here
// too: the (n+1)-th CentralEvent starts the event after the ones being
// kept, so copying stops right before it).
func runCutFile(inPath, outPath string, n int) error {
	src, err := bytesource.OpenFile(inPath)
	if err != nil {
		return err
	}
	defer src.Close() //nolint:errcheck

	out, err := os.Create(outPath) //nolint:gosec
	if err != nil {
		return err
	}
	defer out.Close() //nolint:errcheck

	rd := stream.NewReader(src)

	eventEnds, centralEvents := 0, 0

	for h := range rd.Objects() {
		t := format.ObjectType(h.Header.Type)

		if t == format.TypeCentralEvent {
			if centralEvents == n {
				break
			}

			centralEvents++
		}

		start := h.PayloadOffset - int64(h.Header.HeaderByteLen()) - int64(objheader.SyncMarkerSize)
		length := h.Boundary - start

		if err := src.Seek(start); err != nil {
			return err
		}

		raw, err := src.Read(int(length))
		if err != nil {
			return err
		}

		if _, err := out.Write(raw); err != nil {
			return err
		}

		if t == format.TypeEventEndBlock {
			eventEnds++
			if eventEnds == n {
				break
			}
		}
	}

	return rd.Err()
}
