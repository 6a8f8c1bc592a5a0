package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	"inkwell/app/repositories"
	"inkwell/app/routes"
	"inkwell/config"
	"inkwell/pkg/logger"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("inkwell version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: inkwell <command>
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the blog API server.

Configuration (environment or .env):
  INKWELL_ADDR                   Listen address (default :8080).
  INKWELL_STORAGE                Blog storage backend: memory or badger (default memory).
  INKWELL_DATA_DIR               Badger database directory (default data/badger).
  INKWELL_AUTOSAVE_DELAY         Editor auto-save debounce window (default 5s).
`
	fmt.Println(helpText)
}

// serve runs the HTTP API with the configured storage backend.
func serve() {
	logger.Init()
	defer logger.Log.Sync()

	cfg := config.Load()

	repo, cleanup, err := openRepository(cfg)
	if err != nil {
		logger.Sugar.Fatalf("Failed to open storage: %v", err)
	}
	defer cleanup()

	router := routes.SetupRoutes(repo, cfg.AutoSaveDelay)
	server := &http.Server{Addr: cfg.Addr, Handler: router}

	go func() {
		logger.Sugar.Infow("Starting blog API server", "addr", cfg.Addr, "storage", cfg.Storage)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Sugar.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Sugar.Errorf("Shutdown error: %v", err)
	}
}

func openRepository(cfg *config.Config) (repositories.BlogRepository, func(), error) {
	if cfg.Storage == config.StorageBadger {
		opts := badger.DefaultOptions(cfg.DataDir).WithLogger(nil)
		db, err := badger.Open(opts)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewBadgerBlogRepository(db), func() { db.Close() }, nil
	}
	return repositories.NewMemoryBlogRepository(), func() {}, nil
}
