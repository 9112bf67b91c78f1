// Command catalog-import copies the lecture catalog into the local database so
// the server can run with catalog.source set to "sqlite".
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rpggio/coursegrid/internal/config"
	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"github.com/rpggio/coursegrid/internal/repository"
	"github.com/rpggio/coursegrid/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	defaultSource := cfg.Catalog.Source
	if defaultSource == "sqlite" {
		defaultSource = "http"
	}
	source := flag.String("source", defaultSource, "where to read the catalog from: http or file")
	baseURL := flag.String("base-url", cfg.Catalog.BaseURL, "catalog base URL for -source=http")
	dir := flag.String("dir", cfg.Catalog.Dir, "catalog directory for -source=file")
	dbPath := flag.String("db", cfg.DB.Path, "database to import into")
	timeout := flag.Duration("timeout", time.Minute, "overall import timeout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var src catalog.Source
	switch *source {
	case "http":
		src = catalog.NewHTTPSource(*baseURL, cfg.Catalog.Timeout, logger)
	case "file":
		src = catalog.NewFileSource(*dir)
	default:
		fmt.Fprintf(os.Stderr, "unknown source %q\n", *source)
		os.Exit(2)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	repo := sqlite.NewLectureRepository(db)
	if err := importCatalog(ctx, src, repo, cfg.Catalog.Partitions, logger); err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	counts, err := repo.CountPartitions(ctx)
	if err != nil {
		logger.Error("failed to count lectures", "error", err)
		os.Exit(1)
	}
	for _, p := range cfg.Catalog.Partitions {
		fmt.Printf("%s\t%d\n", p.ID, counts[p.ID])
	}
}

// importCatalog reads every partition concurrently and stores each one only
// after all reads succeeded, so a failed read leaves the database untouched.
func importCatalog(ctx context.Context, src catalog.Source, repo repository.LectureRepository, partitions []catalog.Partition, logger *slog.Logger) error {
	if len(partitions) == 0 {
		return catalog.ErrNoPartitions
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fetched := make([][]lecture.Lecture, len(partitions))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range partitions {
		g.Go(func() error {
			lectures, err := src.FetchPartition(gctx, p)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", catalog.ErrFetchFailed, p.ID, err)
			}
			fetched[i] = lectures
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, p := range partitions {
		n, err := repo.ReplacePartition(ctx, p.ID, fetched[i])
		if err != nil {
			return fmt.Errorf("store partition %s: %w", p.ID, err)
		}
		logger.Info("partition imported", "partition", p.ID, "lectures", n)
	}
	return nil
}
