package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/coursegrid/internal/config"
	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/timetable"
	"github.com/rpggio/coursegrid/internal/export"
	"github.com/rpggio/coursegrid/internal/mcp"
	"github.com/rpggio/coursegrid/internal/sqlite"
	"github.com/rpggio/coursegrid/internal/transport"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if logPath := os.Getenv("COURSEGRID_LOG_PATH"); logPath != "" {
		logFile, err := openCappedLog(logPath, maxLogSizeBytes, keepLogSizeBytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer logFile.Close()
			logWriter = logFile
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	source, err := newSource(cfg.Catalog, db, logger)
	if err != nil {
		logger.Error("failed to configure catalog", "error", err)
		os.Exit(1)
	}
	loader := catalog.NewLoader(source, cfg.Catalog.Partitions, logger)

	if cfg.Catalog.Refresh != "" {
		refresher, err := catalog.NewRefresher(loader, cfg.Catalog.Refresh, logger)
		if err != nil {
			logger.Error("failed to schedule catalog refresh", "error", err)
			os.Exit(1)
		}
		refresher.Start()
		defer func() { <-refresher.Stop().Done() }()
	}

	start, end, loc, err := cfg.Export.Window()
	if err != nil {
		logger.Error("invalid export term", "error", err)
		os.Exit(1)
	}
	if start.IsZero() || end.IsZero() {
		logger.Warn("export term not configured; ics export disabled")
	}

	handler := mcp.NewHandler(mcp.Services{
		Catalog:  loader,
		Tables:   timetable.NewRegistry(cfg.Timetable.InitialTableID, logger),
		Export:   export.NewService(export.Term{Start: start, End: end, Location: loc}, logger),
		PageSize: cfg.Search.PageSize,
	}, logger)

	apiKeys := sqlite.NewAPIKeyRepository(db)
	mcpServer := mcp.NewServer(mcp.Config{
		Handler:       handler,
		Resolver:      apiKeys,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Version:       version,
		Logger:        logger,
	})

	// Warm the catalog so the first search does not wait on every partition.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.Timeout)
		defer cancel()
		if lectures, err := loader.FetchAll(ctx); err != nil {
			logger.Warn("catalog preload failed", "error", err)
		} else {
			logger.Info("catalog loaded", "lectures", len(lectures), "source", cfg.Catalog.Source)
		}
	}()

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
		return
	}

	auth := transport.StaticTenant(mcp.DefaultTenant)
	if cfg.Auth.Enabled {
		auth = transport.AuthMiddleware(apiKeys)
	}
	runHTTPMode(logger, handler, mcpServer, auth, cfg.Server.Host, cfg.Server.Port)
}

func newSource(cfg config.CatalogConfig, db *sqlite.DB, logger *slog.Logger) (catalog.Source, error) {
	switch cfg.Source {
	case "http":
		return catalog.NewHTTPSource(cfg.BaseURL, cfg.Timeout, logger), nil
	case "file":
		return catalog.NewFileSource(cfg.Dir), nil
	case "sqlite":
		return sqlite.NewLectureRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("stdio server error", "error", err)
	}
}

func runHTTPMode(logger *slog.Logger, handler transport.RPCHandler, mcpServer *sdkmcp.Server, auth func(http.Handler) http.Handler, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := transport.NewServer(handler, transport.Options{
		Auth:   auth,
		MCP:    mcpHandler,
		Logger: logger,
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
