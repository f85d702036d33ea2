// Command mockserver serves the YantraTune API from memory, preloaded with the
// demo catalog. Nothing it stores survives a restart.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yantratune/internal/logging"
	"yantratune/internal/memstore"
	"yantratune/internal/seed"
)

func main() {
	addr := flag.String("addr", ":8001", "listen address")
	baseURL := flag.String("base-url", "http://localhost:8001", "public URL used in uploaded file links")
	logLevel := flag.String("log-level", "debug", "debug, info, warn or error")
	flag.Parse()

	logger := logging.New(logging.Config{Level: *logLevel, Format: "text"})
	logging.SetGlobalLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := memstore.NewCatalog()
	if _, err := seed.Load(ctx, catalog); err != nil {
		logger.Fatal(err, "seed catalog")
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           newRouter(catalog, memstore.NewPreferences(), memstore.NewObjects(*baseURL)),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logging.Info("mock API listening on " + *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err, "mock server failed")
		}
	}()

	<-ctx.Done()
	logging.Info("shutting down mock server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "forced shutdown")
	}
}
