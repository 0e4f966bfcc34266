package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/ballistics/internal/api"
	"github.com/banshee-data/ballistics/internal/db"
	"github.com/banshee-data/ballistics/internal/drag"
	"github.com/banshee-data/ballistics/internal/version"
)

var (
	listen      = flag.String("listen", ":8080", "Listen address")
	dbPath      = flag.String("db", "ballistics.db", "Path to the sqlite run store")
	tablesDir   = flag.String("tables-dir", "", "Directory configs may load drag_table_file CSVs from")
	workers     = flag.Int("workers", 0, "Concurrent zeroing runs per request (0 = GOMAXPROCS)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// newHandler wires the API and the /debug/ admin routes onto one mux.
func newHandler(store *db.DB, reg *drag.Registry) (http.Handler, error) {
	s := api.NewServer(store, reg, *tablesDir)
	s.SetWorkers(*workers)
	mux := s.ServeMux()
	if err := store.AttachAdminRoutes(mux); err != nil {
		return nil, err
	}
	return api.LoggingMiddleware(mux), nil
}

// Main
func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("ballistics %s\n", version.String())
		return
	}
	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	reg, err := drag.DefaultRegistry()
	if err != nil {
		log.Fatalf("Failed to load drag tables: %v", err)
	}

	store, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	h, err := newHandler(store, reg)
	if err != nil {
		log.Fatalf("Failed to attach admin routes: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              *listen,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	// Start server in a goroutine so it doesn't block
	errc := make(chan error, 1)
	go func() {
		log.Printf("ballistics %s listening on %s", version.Version, *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	// Wait for context cancellation to shut down server
	select {
	case err := <-errc:
		if err != nil {
			log.Printf("failed to start server: %v", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		// Force close the server if graceful shutdown fails
		if err := server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}
	log.Printf("Graceful shutdown complete")
}
