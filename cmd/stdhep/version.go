package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/samcharles93/stdhep/internal/version"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print decoder build information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			if w == nil {
				w = os.Stdout
			}
			return writeVersion(w, version.Resolve())
		},
	}
}

// writeVersion prints build details in the same aligned layout as inspect.
func writeVersion(w io.Writer, info version.Info) error {
	rows := [][2]string{
		{"stdhep", info.Version},
		{"commit", info.Commit},
		{"built", info.BuildTime},
		{"go", info.GoVersion},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-11s %s\n", row[0]+":", row[1]); err != nil {
			return err
		}
	}
	return nil
}
