package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/httpapi"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagAPIAddr    string
	flagAPINoStore bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP analysis API",
	Long: `Serve board analysis, swap checks and scores as JSON.

Settings are read from a .env file when present:
  PORT             - Listen port (overridden by --addr)
  REQUEST_TIMEOUT  - Per-request timeout, e.g. 5s
  LOG_LEVEL        - Overrides --log-level

Endpoints:
  GET  /health
  GET  /boards
  GET  /boards/{id}
  POST /analyze         {"rows": ["RGB..", ...]}
  POST /swap            {"rows": [...], "a": {"x":0,"y":0}, "b": {"x":1,"y":0}}
  GET  /scores
  GET  /scores/{mode}
  GET  /scores/{mode}/runs`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "Listen address (default :$PORT or :8080)")
	apiCmd.Flags().BoolVar(&flagAPINoStore, "no-scores", false, "Serve without the scores database")
}

func runAPI(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		flagLogLevel = lvl
	}
	logger := newLogger(os.Stderr)

	cfg := httpapi.DefaultConfig()
	switch {
	case flagAPIAddr != "":
		cfg.Addr = flagAPIAddr
	case os.Getenv("PORT") != "":
		cfg.Addr = ":" + os.Getenv("PORT")
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logger.Warn("ignoring REQUEST_TIMEOUT", "value", v, "error", err)
		} else {
			cfg.RequestTimeout = d
		}
	}

	var store *storage.Store
	if !flagAPINoStore {
		store = openStore(logger)
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return httpapi.New(cfg, store, logger).ListenAndServe(ctx)
}
