package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/gff/internal/dump"
	"github.com/samcharles93/gff/internal/logger"
	"github.com/samcharles93/gff/internal/resource"
)

func dumpCmd() *cli.Command {
	var (
		indent  string
		outPath string
		expect  string
	)

	return &cli.Command{
		Name:      "dump",
		Usage:     "Write the field tree of a GFF file as JSON",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "indent", Usage: "indent string; empty for compact output", Value: "  ", Destination: &indent},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to file instead of stdout", Destination: &outPath},
			expectFlag(&expect),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := oneArg(cmd)
			if err != nil {
				return err
			}
			loader := &resource.Loader{Expect: expect, Logger: logger.FromContext(ctx)}
			doc, err := loader.Load(ctx, path)
			if err != nil {
				return err
			}

			if outPath == "" {
				return dump.JSON(outWriter(cmd), doc, indent)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := dump.JSON(f, doc, indent); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
}
