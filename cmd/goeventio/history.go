package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cta-observatory/goeventio/bytesource"
	"github.com/cta-observatory/goeventio/format"
	"github.com/cta-observatory/goeventio/objects"
	"github.com/cta-observatory/goeventio/registry"
	"github.com/cta-observatory/goeventio/stream"
)

func newSimtelHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print_simtel_history <file>",
		Short: "Print the logged command lines and config-file lines (HistoryBlock, type 70)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPrintHistory(os.Stdout, args[0])
		},
	}
}

func newSimtelMetaparamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print_simtel_metaparams <file>",
		Short: "Print the run/MC configuration scalars (RunHeader, MCRunHeader)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPrintMetaparams(os.Stdout, args[0])
		},
	}
}

func runPrintHistory(w io.Writer, path string) error {
	src, err := bytesource.OpenFile(path)
	if err != nil {
		return err
	}
	defer src.Close() //nolint:errcheck

	reg, err := registry.New()
	if err != nil {
		return err
	}

	objects.RegisterDefaults(reg)

	rd := stream.NewReader(src)

	for h := range rd.Objects() {
		if format.ObjectType(h.Header.Type) != format.TypeHistoryBlock || !h.Header.OnlySubObjects {
			continue
		}

		for sub := range h.SubObjects() {
			payload, err := sub.ReadPayload()
			if err != nil {
				return err
			}

			rec, err := reg.Dispatch(sub.Header, payload, sub.PayloadOffset)
			if err != nil {
				return err
			}

			switch v := rec.(type) {
			case objects.HistoryCommandLine:
				fmt.Fprintf(w, "[%d] %s\n", v.Timestamp, v.Command)
			case objects.HistoryConfigLine:
				fmt.Fprintf(w, "[%d] %s\n", v.Timestamp, v.Line)
			}
		}
	}

	return rd.Err()
}

func runPrintMetaparams(w io.Writer, path string) error {
	src, err := bytesource.OpenFile(path)
	if err != nil {
		return err
	}
	defer src.Close() //nolint:errcheck

	reg, err := registry.New()
	if err != nil {
		return err
	}

	objects.RegisterDefaults(reg)

	rd := stream.NewReader(src)

	for h := range rd.Objects() {
		t := format.ObjectType(h.Header.Type)
		if t != format.TypeRunHeader && t != format.TypeMCRunHeader {
			continue
		}

		payload, err := h.ReadPayload()
		if err != nil {
			return err
		}

		rec, err := reg.Dispatch(h.Header, payload, h.PayloadOffset)
		if err != nil {
			return err
		}

		switch v := rec.(type) {
		case objects.RunHeader:
			fmt.Fprintf(w, "run %d date %d telescopes %v\n", v.RunNumber, v.Date, v.TelescopeIDs)
		case objects.MCRunHeader:
			fmt.Fprintf(w, "shower_prog %d/%d observation_levels %v\n", v.ShowerProgID, v.ShowerProgVers, v.ObservLevels)
		}
	}

	return rd.Err()
}
