package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nicktill/tinyga/pkg/collecttest"
	"github.com/nicktill/tinyga/pkg/config"
	galog "github.com/nicktill/tinyga/pkg/log"
	"github.com/nicktill/tinyga/pkg/sdk"
	"github.com/nicktill/tinyga/pkg/sdk/batch"
	"github.com/nicktill/tinyga/pkg/sdk/hit"
	"github.com/nicktill/tinyga/pkg/sdk/httpx"
)

const (
	listenAddr      = ":3000"
	shutdownTimeout = 10 * time.Second
)

func main() {
	env := config.LoadEnv()

	logger := galog.NewLeveledLogger(os.Stderr)
	logger.SetDebug(env.Debug)

	cfg := sdk.ClientConfig{
		TrackingID: env.TrackingID,
		ClientID:   env.ClientID,
		UserAgent:  env.UserAgent,
		Debug:      env.Debug,
		Proxy:      env.Proxy,
		Version:    env.Version,
		Logger:     logger,
	}

	// Without a tracking id, hits go to a local collection server.
	if cfg.TrackingID == "" {
		local := collecttest.NewServer()
		defer local.Close()
		cfg.TrackingID = "UA-000000-0"
		cfg.Transport = local.Transport()
		log.Printf("GOOGLE_TRACKINGID not set, sending hits to local collector at %s", local.URL)
	}

	client, err := sdk.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create analytics client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sendStartupHits(ctx, client); err != nil {
		log.Printf("Startup hits were not delivered: %v", err)
	}

	batcher := batch.New(client, batch.Config{FlushEvery: env.FlushEvery, Logger: logger})
	if err := batcher.Start(ctx); err != nil {
		log.Fatalf("Failed to start batcher: %v", err)
	}

	mux := http.NewServeMux()
	setupHandlers(mux, batcher)
	handler := httpx.Middleware(batcher, httpx.Options{Timing: true})(mux)

	server := &http.Server{
		Addr:         listenAddr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Example app listening on %s", listenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	go startTrafficSimulator(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down...")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if err := batcher.Stop(); err != nil {
		log.Printf("Failed to flush remaining hits: %v", err)
	}
}

// sendStartupHits reports the app launch directly through the client.
func sendStartupHits(ctx context.Context, client *sdk.Client) error {
	hostname, _ := os.Hostname()

	ok, err := client.
		Screenview(hit.Screenview{
			AppName:        "tinyga-example",
			AppVersion:     "0.1.0",
			AppID:          "com.nicktill.tinyga.example",
			AppInstallerID: "com.nicktill.tinyga.example",
			ScreenName:     "startup",
		}).
		Append(hit.Pairs("ul", "en-US")...).
		Event(hit.Event{Category: "lifecycle", Action: "start", Label: hostname}).
		Flush(ctx)
	if err != nil {
		return err
	}
	log.Printf("Startup hits delivered (accepted: %t)", ok)
	return nil
}
