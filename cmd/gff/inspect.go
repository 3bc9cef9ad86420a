package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/gff/internal/dump"
	"github.com/samcharles93/gff/internal/logger"
	"github.com/samcharles93/gff/internal/resource"
	"github.com/samcharles93/gff/pkg/gff"
)

func inspectCmd() *cli.Command {
	var (
		noTree bool
		expect string
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the header sections and field tree of a GFF file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-tree", Usage: "print only the header section table", Destination: &noTree},
			expectFlag(&expect),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := oneArg(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			h, err := gff.ParseHeader(data)
			if err != nil {
				return &resource.Error{Name: path, Kind: resource.ErrUnsupportedResource, Err: err}
			}

			out := outWriter(cmd)
			fmt.Fprintf(out, "file:    %s (%d bytes)\n", path, len(data))
			fmt.Fprintf(out, "type:    %s\n", h.ContentType())
			fmt.Fprintf(out, "version: %s\n\n", h.VersionTag())
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SECTION\tOFFSET\tCOUNT\tBYTES")
			for _, st := range h.Stats() {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", st.Section, st.Offset, st.Count, st.Bytes)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if noTree {
				return nil
			}

			loader := &resource.Loader{Expect: expect, Logger: logger.FromContext(ctx)}
			doc, err := loader.LoadBytes(ctx, path, data)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			return dump.Text(out, doc)
		},
	}
}

func oneArg(cmd *cli.Command) (string, error) {
	if cmd.NArg() != 1 {
		return "", errors.New("expected exactly one file argument")
	}
	return cmd.Args().First(), nil
}
