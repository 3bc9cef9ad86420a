package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/gff/internal/logger"
	"github.com/samcharles93/gff/internal/resource"
	"github.com/samcharles93/gff/pkg/gff"
)

func rewriteCmd() *cli.Command {
	var (
		version     string
		contentType string
	)

	return &cli.Command{
		Name:      "rewrite",
		Usage:     "Decode a GFF file and encode it again in canonical layout",
		ArgsUsage: "<in> <out>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "version", Usage: "version tag to write, eg V3.2", Destination: &version},
			&cli.StringFlag{Name: "type", Usage: "content type to write, eg UTC", Destination: &contentType},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyRewriteConfig(cmd, cfg, &version)
			if cmd.NArg() != 2 {
				return errors.New("expected input and output file arguments")
			}
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)
			if version != "" && !slices.Contains(gff.Versions, version) {
				return fmt.Errorf("unknown version %q (want one of %v)", version, gff.Versions)
			}
			if contentType != "" && !gff.ValidContentType(contentType) {
				return fmt.Errorf("content type %q is not up to 4 printable ASCII characters", contentType)
			}

			log := logger.FromContext(ctx)
			loader := &resource.Loader{Logger: log}
			doc, err := loader.Load(ctx, in)
			if err != nil {
				return err
			}
			if version != "" {
				doc.Version = version
			}
			if contentType != "" {
				doc.Type = contentType
			}
			if err := gff.WriteFile(out, doc); err != nil {
				return err
			}
			log.Info("rewrote resource", "in", in, "out", out, "type", doc.ContentType(), "version", doc.Version)
			return nil
		},
	}
}
