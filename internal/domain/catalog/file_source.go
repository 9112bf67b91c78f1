package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpggio/coursegrid/internal/domain/lecture"
)

// FileSource reads partitions from JSON files below a directory. The partition
// path is resolved relative to the directory.
type FileSource struct {
	dir string
}

// NewFileSource creates a source reading from dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// FetchPartition decodes the partition file.
func (s *FileSource) FetchPartition(ctx context.Context, partition Partition) ([]lecture.Lecture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, filepath.FromSlash(strings.TrimLeft(partition.Path, "/")))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read partition %s: %w", partition.ID, err)
	}
	var lectures []lecture.Lecture
	if err := json.Unmarshal(data, &lectures); err != nil {
		return nil, fmt.Errorf("decode partition %s: %w", partition.ID, err)
	}
	return lectures, nil
}
