package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/stdhep/internal/export"
	"github.com/samcharles93/stdhep/internal/logger"
	"github.com/samcharles93/stdhep/pkg/stdhep"
)

func dumpCmd() *cli.Command {
	var (
		format string
		out    string
	)

	return &cli.Command{
		Name:      "dump",
		Usage:     "Stream decoded events as JSON lines or msgpack frames",
		ArgsUsage: "<file>",
		Flags: append(commonDecodeFlags(),
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (jsonl, msgpack)",
				Value:       export.FormatJSONL,
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path (default stdout)",
				Destination: &out,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("dump: missing file argument")
			}
			log := logger.FromContext(ctx)
			cfg := LoadConfig()
			applyDecodeConfig(cmd, cfg)
			opts, err := decodeOptions(log, cfg)
			if err != nil {
				return err
			}

			outPath, err := resolveDumpOut(out)
			if err != nil {
				return err
			}
			var w io.Writer = os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			if err := runDump(w, path, format, opts); err != nil {
				return err
			}
			if outPath != "" {
				log.Info("events written", "path", outPath, "format", format)
			}
			return nil
		},
	}
}

func runDump(w io.Writer, path, format string, opts stdhep.Options) error {
	bw := bufio.NewWriter(w)
	enc, err := export.NewEncoder(bw, format)
	if err != nil {
		return err
	}
	r, err := stdhep.Open(path, opts)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	copyErr := export.Copy(enc, r)
	if err := bw.Flush(); err != nil && copyErr == nil {
		copyErr = err
	}
	return copyErr
}
