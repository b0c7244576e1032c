/*
main.go - Application entry point

PURPOSE:

	Initializes and starts the Beaver's Choice paper ledger server.
	Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:

	1. Parse command-line flags and optional YAML config
	2. Build the deterministic sample catalog
	3. Initialize SQLite store and persist the catalog
	4. Create API handler with dependencies
	5. Start server with graceful shutdown

COMMAND-LINE FLAGS:

	-port    HTTP server port (default: 8080)
	-db      SQLite database path (default: paperledger.db)
	         Use ":memory:" for an in-memory database
	-config  optional YAML config file path

GRACEFUL SHUTDOWN:

	On SIGINT/SIGTERM:
	1. Stop accepting new connections
	2. Wait for active requests to complete (30s timeout)
	3. Close database connection
	4. Exit

EXAMPLES:

	# Run with file database
	./server -db="./data/ledger.db"

	# Run with in-memory database
	./server -db=":memory:"

	# Run on a different port with a config file
	./server -port=3000 -config=./config.yaml

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - config/config.go: YAML configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beaverschoice/paperledger/api"
	"github.com/beaverschoice/paperledger/catalog"
	"github.com/beaverschoice/paperledger/config"
	"github.com/beaverschoice/paperledger/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	cfgPath := flag.String("config", "", "YAML config file path")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	// Build catalog
	cat, err := catalog.New(catalog.SampleInventory(catalog.PaperSupplies(), cfg.Seed.Coverage, cfg.Seed.Seed))
	if err != nil {
		log.Fatalf("Failed to build catalog: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	if err := store.ReplaceCatalog(context.Background(), cat.Items()); err != nil {
		log.Fatalf("Failed to persist catalog: %v", err)
	}

	// Initialize handler
	handler := api.NewHandler(store, cat)

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", cfg.Port)
		log.Printf("📊 API available at http://localhost:%d/api", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
