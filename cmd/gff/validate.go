package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/gff/internal/logger"
	"github.com/samcharles93/gff/internal/resource"
)

var errValidationFailed = errors.New("validation failed")

func validateCmd() *cli.Command {
	var (
		workers int64
		expect  string
		quiet   bool
	)

	return &cli.Command{
		Name:      "validate",
		Usage:     "Decode GFF files and report any that are corrupt or unsupported",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "workers",
				Aliases:     []string{"j"},
				Usage:       "files decoded concurrently",
				Value:       int64(runtime.GOMAXPROCS(0)),
				Destination: &workers,
			},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "print failures only", Destination: &quiet},
			expectFlag(&expect),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyValidateConfig(cmd, cfg, &workers)
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New("expected at least one file argument")
			}

			log := logger.FromContext(ctx)
			loader := &resource.Loader{Expect: expect, Logger: log}
			results, err := loader.LoadAll(ctx, paths, int(workers))
			if err != nil {
				return err
			}

			out := outWriter(cmd)
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %v\n", r.Err)
					continue
				}
				if !quiet {
					fmt.Fprintf(out, "ok   %s (%s %s)\n", r.Path, r.Doc.ContentType(), r.Doc.Version)
				}
			}
			log.Info("validated", "files", len(results), "failed", failed)
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", errValidationFailed, failed, len(results))
			}
			return nil
		},
	}
}
