/*
Package main
File: main.go
Description: Server entry point. Loads the configuration and the game catalog,
starts the real-time WebSocket hub and serves the match API.
*/

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/everforgeworks/galaxy-haulers/internal/api"
	"github.com/everforgeworks/galaxy-haulers/internal/catalog"
	"github.com/everforgeworks/galaxy-haulers/internal/config"
)

func main() {
	// 1. Environment configuration and logger
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config Fail: %v", err)
	}
	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("Logger Fail: %v", err)
	}
	defer logger.Sync()

	// 2. Tiles, cards and flight rules
	store, err := catalog.NewStore(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Catalog Fail: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Real-time hub
	hub := api.NewHub(cfg.OriginAllowed)
	go hub.Run(ctx)

	// 4. Hot-reload: SIGHUP refreshes the catalog for the next matches
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGHUP)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigChan:
				log.Println("SIGNAL: Reloading catalog...")
				if err := store.Reload(); err != nil {
					logger.Warn("catalog reload failed, keeping the previous one", zap.Error(err))
				}
			}
		}
	}()

	// 5. Routes
	server := api.NewServer(cfg, store, hub, logger)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsMiddleware(server.Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	// 6. Start the server
	log.Printf("GALAXY HAULERS server live on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// corsMiddleware lets browser clients served elsewhere talk to the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
