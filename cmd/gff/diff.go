package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/gff/internal/dump"
	"github.com/samcharles93/gff/internal/logger"
	"github.com/samcharles93/gff/internal/resource"
)

var errDocumentsDiffer = errors.New("documents differ")

func diffCmd() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Compare the field trees of two GFF files",
		ArgsUsage: "<a> <b>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return errors.New("expected two file arguments")
			}
			loader := &resource.Loader{Logger: logger.FromContext(ctx)}
			a, err := loader.Load(ctx, cmd.Args().Get(0))
			if err != nil {
				return err
			}
			b, err := loader.Load(ctx, cmd.Args().Get(1))
			if err != nil {
				return err
			}
			d := dump.Diff(a, b)
			if d == "" {
				return nil
			}
			fmt.Fprintf(outWriter(cmd), "--- %s\n+++ %s\n%s", cmd.Args().Get(0), cmd.Args().Get(1), d)
			return errDocumentsDiffer
		},
	}
}
