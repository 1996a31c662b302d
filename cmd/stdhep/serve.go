package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/stdhep/internal/api"
	"github.com/samcharles93/stdhep/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		cacheSize   int64
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the sample decode API",
		Flags: append(commonDecodeFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.Int64Flag{
				Name:        "cache-size",
				Usage:       "number of decode results kept for GET /v1/samples/:id",
				Value:       api.DefaultCacheSize,
				Destination: &cacheSize,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			cfg := LoadConfig()
			applyServeConfig(cmd, cfg, &addr, &cacheSize)
			opts, err := decodeOptions(log, cfg)
			if err != nil {
				return err
			}

			store, err := api.NewSampleStore(int(cacheSize))
			if err != nil {
				return err
			}
			service := api.NewDecodeService(api.DecodeServiceConfig{
				Classifier: opts.Classifier,
				Logger:     log,
				MaxEvents:  opts.MaxEvents,
			})
			server := api.NewServer(store, service)
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "cache_size", cacheSize)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
