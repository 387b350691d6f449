package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wutheringcup/echodraft/internal/app"
	"github.com/wutheringcup/echodraft/internal/config"
	"github.com/wutheringcup/echodraft/internal/logger"
)

var version = "dev"

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	logLevel := flag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	baseURL := flag.String("baseurl", cfg.BaseURL, "Public base URL used in QR links")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `EchoDraft - tournament draft and bracket server

Usage:
  echodraft [options]

Options:
  -addr string     HTTP listen address (default %q)
  -db string       SQLite database path (default %q)
  -loglevel str    Log level: debug, info, warn, error (default %q)
  -baseurl string  Public base URL used in QR links (default %q)
  -version         Show version and exit
  -help            Show this help message

Environment variables (overridden by flags; .env is read if present):
  ECHODRAFT_ADDR, ECHODRAFT_DB, ECHODRAFT_LOG_LEVEL, ECHODRAFT_HTTP_LOG,
  ECHODRAFT_SESSION_TTL, ECHODRAFT_BUSY_TIMEOUT, ECHODRAFT_BASE_URL
`, cfg.Addr, cfg.DBPath, cfg.LogLevel, cfg.BaseURL)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("echodraft %s\n", version)
		os.Exit(0)
	}

	cfg.Addr = *addr
	cfg.DBPath = *dbPath
	cfg.LogLevel = *logLevel
	cfg.BaseURL = *baseURL

	appLog := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))
	appLog.SetHTTPLogging(cfg.HTTPLogging)

	a, err := app.New(appLog, cfg)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	if err := a.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
