// sightlined is the inference server: it bridges HTTP image uploads to the
// hosted visual-inference service and serves ranked person descriptions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sightline/go-sightline/internal/config"
	applog "github.com/sightline/go-sightline/internal/log"
	"github.com/sightline/go-sightline/pkg/inference"
	"github.com/sightline/go-sightline/pkg/server"
)

func main() {
	port := flag.Int("port", 0, "HTTP listen port (overrides PORT env var)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sightlined: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	applog.Init(cfg.LogLevel)
	logger := applog.L()

	engine, err := inference.NewRemote(
		inference.WithAPIKey(cfg.APIKey),
		inference.WithProfileID(cfg.ProfileID),
		inference.WithEndpoint(cfg.EndpointURL),
		inference.WithLogger(logger),
	)
	if err != nil {
		logger.Error("engine setup failed", "error", err)
		os.Exit(1)
	}

	manager := inference.NewManagerWithLogger(engine, logger)
	gateway := inference.NewGatewayWithLogger(manager, cfg.ProfileID, logger)

	// Dial the detection session now so auth and configuration problems
	// stop the process instead of the first request.
	warmupCtx, cancelWarmup := context.WithTimeout(context.Background(), 30*time.Second)
	err = gateway.Warmup(warmupCtx)
	cancelWarmup()
	if err != nil {
		logger.Error("detection session warmup failed", "error", err)
		os.Exit(1)
	}

	srv := server.New(gateway, strconv.Itoa(cfg.Port), logger)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errc:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	if err := manager.CloseAll(); err != nil {
		logger.Error("session teardown failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}
