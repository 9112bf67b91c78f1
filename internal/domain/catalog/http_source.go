package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rpggio/coursegrid/internal/domain/lecture"
)

// HTTPSource reads partitions as JSON arrays served under a base URL.
type HTTPSource struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewHTTPSource creates a source rooted at baseURL. A zero timeout falls back
// to 15 seconds.
func NewHTTPSource(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPSource {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HTTPSource{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// FetchPartition issues one GET for the partition path.
func (s *HTTPSource) FetchPartition(ctx context.Context, partition Partition) ([]lecture.Lecture, error) {
	if s.baseURL == "" {
		return nil, errors.New("catalog base URL is empty")
	}
	url := s.baseURL + "/" + strings.TrimLeft(partition.Path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var lectures []lecture.Lecture
	if err := json.NewDecoder(resp.Body).Decode(&lectures); err != nil {
		return nil, fmt.Errorf("decode partition %s: %w", partition.ID, err)
	}

	s.logger.Info("catalog partition fetched", "partition", partition.ID, "lectures", len(lectures), "duration", time.Since(start))
	return lectures, nil
}
