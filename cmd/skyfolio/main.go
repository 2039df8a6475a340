// Command skyfolio runs the island simulation and serves it to browser clients over a websocket,
// with an optional desktop window or terminal HUD for local control.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	var cfg config
	flag.StringVar(&cfg.addr, "addr", ":8080", "HTTP listen address; empty disables the server")
	flag.StringVar(&cfg.catalogPath, "catalog", "", "YAML destination catalog (built-in island when empty)")
	flag.StringVar(&cfg.tuningPath, "tuning", "", "YAML flight and camera tuning (defaults when empty)")
	flag.StringVar(&cfg.frontend, "frontend", frontendHeadless, "local front-end: window, terminal or headless")
	flag.BoolVar(&cfg.audio, "audio", false, "play chimes for collected markers and arrivals")
	flag.BoolVar(&cfg.profile, "profile", false, "log tick rate and memory statistics every second")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	logger, closeLog, err := openLogger(*logPath, cfg.frontend == frontendTerminal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skyfolio: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Printf("[Main] %v", err)
		closeLog()
		os.Exit(1)
	}
}

// openLogger builds the process logger. The terminal front-end owns the screen, so without a log
// file its output is discarded.
func openLogger(path string, quiet bool) (*log.Logger, func(), error) {
	flags := log.LstdFlags | log.Lmicroseconds
	if path == "" {
		if quiet {
			return log.New(io.Discard, "", flags), func() {}, nil
		}
		return log.New(os.Stderr, "", flags), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "", flags), func() { _ = f.Close() }, nil
}
