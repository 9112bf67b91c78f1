package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Loader fetches the full catalog once and serves it from memory afterwards.
// Concurrent callers during a load share a single flight, and each partition
// is read exactly once per load.
type Loader struct {
	source     Source
	partitions []Partition
	logger     *slog.Logger

	group singleflight.Group

	mu      sync.Mutex
	gen     uint64
	loading bool
	loaded  bool
	cached  []lecture.Lecture
}

// NewLoader creates a loader over the given partitions, read in order.
func NewLoader(source Source, partitions []Partition, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		source:     source,
		partitions: append([]Partition(nil), partitions...),
		logger:     logger,
	}
}

// State reports where the loader is in its Empty → Loading → Loaded cycle.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.loaded:
		return StateLoaded
	case l.loading:
		return StateLoading
	default:
		return StateEmpty
	}
}

// FetchAll returns the merged catalog. The returned slice is shared by every
// caller and must not be modified.
//
// ctx only bounds how long this caller waits; an in-flight load keeps running
// and settles the loader state once regardless.
func (l *Loader) FetchAll(ctx context.Context) ([]lecture.Lecture, error) {
	l.mu.Lock()
	if l.loaded {
		lectures := l.cached
		l.mu.Unlock()
		l.logger.Debug("catalog cache hit", "lectures", len(lectures))
		return lectures, nil
	}
	gen := l.gen
	l.loading = true
	l.mu.Unlock()

	flightCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(flightKey(gen), func() (any, error) {
		return l.load(flightCtx, gen)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			l.logger.Debug("catalog load shared", "generation", gen)
		}
		return res.Val.([]lecture.Lecture), nil
	}
}

// Lookup returns the catalog lecture with the given id.
func (l *Loader) Lookup(ctx context.Context, id string) (*lecture.Lecture, error) {
	lectures, err := l.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range lectures {
		if lectures[i].ID == id {
			lec := lectures[i]
			return &lec, nil
		}
	}
	return nil, ErrLectureNotFound
}

// Reset drops the cached catalog. A load that is still running when Reset is
// called completes for its own waiters but is not cached.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.loading = false
	l.loaded = false
	l.cached = nil
	l.logger.Info("catalog cache reset", "generation", l.gen)
}

func (l *Loader) load(ctx context.Context, gen uint64) ([]lecture.Lecture, error) {
	l.mu.Lock()
	if l.loaded && l.gen == gen {
		lectures := l.cached
		l.mu.Unlock()
		return lectures, nil
	}
	l.mu.Unlock()

	merged, err := l.fetchPartitions(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return merged, err
	}
	l.loading = false
	if err != nil {
		l.logger.Error("catalog load failed", "error", err)
		return nil, err
	}
	l.cached = merged
	l.loaded = true
	return merged, nil
}

func (l *Loader) fetchPartitions(ctx context.Context) ([]lecture.Lecture, error) {
	if len(l.partitions) == 0 {
		return nil, ErrNoPartitions
	}

	start := time.Now()
	l.logger.Info("catalog load start", "partitions", len(l.partitions))

	results := make([][]lecture.Lecture, len(l.partitions))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range l.partitions {
		g.Go(func() error {
			lectures, err := l.source.FetchPartition(gctx, p)
			if err != nil {
				return fmt.Errorf("%w: partition %s: %w", ErrFetchFailed, p.ID, err)
			}
			results[i] = lectures
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]lecture.Lecture, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}

	l.logger.Info("catalog load completed", "lectures", len(merged), "duration", time.Since(start))
	return merged, nil
}

func flightKey(gen uint64) string {
	return "catalog-" + strconv.FormatUint(gen, 10)
}
