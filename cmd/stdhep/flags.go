package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/stdhep/internal/logger"
	"github.com/samcharles93/stdhep/internal/pdg"
	"github.com/samcharles93/stdhep/pkg/stdhep"
)

var (
	invisibleIDs string
	hadronicIDs  string
	maxEvents    int64
	logLevel     string
	logFormat    string
	debug        bool
)

func commonDecodeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "invisible",
			Usage:       "extra comma-separated PDG ids treated as invisible",
			Destination: &invisibleIDs,
		},
		&cli.StringFlag{
			Name:        "hadronic",
			Usage:       "extra comma-separated PDG ids treated as hadronic",
			Destination: &hadronicIDs,
		},
		&cli.Int64Flag{
			Name:        "max-events",
			Aliases:     []string{"n"},
			Usage:       "stop after this many kept events (0 = all)",
			Destination: &maxEvents,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// parsePDGList parses a comma-separated list of PDG ids.
func parsePDGList(s string) ([]int32, error) {
	var ids []int32
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseInt(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid PDG id %q", part)
		}
		ids = append(ids, int32(v))
	}
	return ids, nil
}

// decodeOptions builds reader options from the decode flags and config.
func decodeOptions(log logger.Logger, cfg Config) (stdhep.Options, error) {
	invisible, err := parsePDGList(invisibleIDs)
	if err != nil {
		return stdhep.Options{}, fmt.Errorf("--invisible: %w", err)
	}
	hadronic, err := parsePDGList(hadronicIDs)
	if err != nil {
		return stdhep.Options{}, fmt.Errorf("--hadronic: %w", err)
	}
	invisible = append(invisible, cfg.InvisiblePDGIDs...)
	hadronic = append(hadronic, cfg.HadronicPDGIDs...)

	return stdhep.Options{
		Logger:     log,
		Classifier: stdhep.TableClassifier{Table: pdg.Standard().With(invisible, hadronic)},
		MaxEvents:  int(maxEvents),
	}, nil
}
