package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/stdhep/internal/logger"
	"github.com/samcharles93/stdhep/pkg/stdhep"
)

func inspectCmd() *cli.Command {
	var showBlocks bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the file header and decode every event to tally KEEP/SKIP outcomes",
		ArgsUsage: "<file>",
		Flags: append(commonDecodeFlags(),
			&cli.BoolFlag{
				Name:        "blocks",
				Usage:       "list the block ids declared in the file header",
				Destination: &showBlocks,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("inspect: missing file argument")
			}
			cfg := LoadConfig()
			applyDecodeConfig(cmd, cfg)
			opts, err := decodeOptions(logger.FromContext(ctx), cfg)
			if err != nil {
				return err
			}
			return runInspect(os.Stdout, path, opts, showBlocks)
		},
	}
}

func runInspect(w io.Writer, path string, opts stdhep.Options, showBlocks bool) error {
	r, err := stdhep.Open(path, opts)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	var readErr error
	for {
		_, st, err := r.ReadEvent()
		if st == stdhep.StatusFailure {
			if !stdhep.IsEndOfStream(err) {
				readErr = err
			}
			break
		}
	}

	s := r.Sample()
	stats := r.Stats()
	_, _ = fmt.Fprintf(w, "file:       %s\n", path)
	_, _ = fmt.Fprintf(w, "version:    %s (%s)\n", s.Version, s.Schema)
	_, _ = fmt.Fprintf(w, "title:      %s\n", s.Title)
	_, _ = fmt.Fprintf(w, "generator:  %s\n", s.Generator)
	if s.Comment != "" {
		_, _ = fmt.Fprintf(w, "comment:    %s\n", s.Comment)
	}
	_, _ = fmt.Fprintf(w, "created:    %s\n", s.CreationDate)
	if s.ClosingDate != "" {
		_, _ = fmt.Fprintf(w, "closed:     %s\n", s.ClosingDate)
	}
	_, _ = fmt.Fprintf(w, "events:     expected=%d written=%d\n", s.ExpectedEvents, s.WrittenEvents)
	if s.Xsection != nil {
		_, _ = fmt.Fprintf(w, "xsection:   %g pb\n", s.Xsection.Mean)
	}
	if s.Run != nil {
		_, _ = fmt.Fprintf(w, "run:        ecm=%g requested=%d generated=%d written=%d\n",
			s.Run.CMEnergy, s.Run.Requested, s.Run.Generated, s.Run.Written)
	}
	if showBlocks {
		for i, id := range s.BlockIDs {
			name := ""
			if i < len(s.BlockNames) {
				name = s.BlockNames[i]
			}
			_, _ = fmt.Fprintf(w, "block:      %-5d %s %s\n", id, stdhep.BlockID(id), name)
		}
	}
	_, _ = fmt.Fprintf(w, "kept:       %d\n", stats.Keep)
	_, _ = fmt.Fprintf(w, "skipped:    %d%s\n", stats.Skip, formatReasons(stats.Reasons))
	if readErr != nil {
		_, _ = fmt.Fprintf(w, "stopped:    %v (%s)\n", readErr, stdhep.Classify(readErr))
		return readErr
	}
	return nil
}

func formatReasons(reasons map[string]int) string {
	if len(reasons) == 0 {
		return ""
	}
	keys := make([]string, 0, len(reasons))
	for k := range reasons {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, reasons[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
