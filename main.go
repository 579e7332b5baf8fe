package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v2"
)

const (
	DEFAULT_LISTEN_ADDR = ":8000"
	DEFAULT_LOG_LEVEL   = "info"
	DEFAULT_HANDOFF_TTL = 10 * time.Minute
)

var version = "dev"

var logLevels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

func main() {
	app := &cli.App{
		Name:    "video-download-form",
		Usage:   "serve a form that turns a YouTube URL into an MP4 download",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Usage:   "address to listen on",
				Value:   DEFAULT_LISTEN_ADDR,
				EnvVars: []string{"LISTEN_ADDR"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn, error or off",
				Value:   DEFAULT_LOG_LEVEL,
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.DurationFlag{
				Name:    "handoff-ttl",
				Usage:   "how long a fetched video waits to be downloaded",
				Value:   DEFAULT_HANDOFF_TTL,
				EnvVars: []string{"HANDOFF_TTL"},
			},
		},
		Action: serve,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx *cli.Context) error {
	level, err := parseLogLevel(ctx.String("log-level"))
	if err != nil {
		return err
	}
	ttl := ctx.Duration("handoff-ttl")
	if ttl <= 0 {
		return fmt.Errorf("handoff-ttl must be positive, got %s", ttl)
	}

	logger := log.New("video-download-form")
	logger.SetLevel(level)

	handoffs := NewHandoffStore(ttl)
	go handoffs.Run(ctx.Context, sweepInterval(ttl), logger)
	downloader := NewDownloader(newYouTubeCatalog(&http.Client{}), logger)
	shell := NewShell(downloader, handoffs, logger)

	e := newServer(shell, handoffs, logger)
	logger.Infof("Listening on %s", ctx.String("listen"))
	if err := e.Start(ctx.String("listen")); err != nil {
		return fmt.Errorf("serving on %s: %w", ctx.String("listen"), err)
	}
	return nil
}

// sweepInterval keeps uncollected downloads from outliving their TTL by much.
func sweepInterval(ttl time.Duration) time.Duration {
	if ttl > time.Minute {
		return time.Minute
	}
	return ttl
}

func parseLogLevel(s string) (log.Lvl, error) {
	level, ok := logLevels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
