package catalog

import (
	"context"

	"github.com/rpggio/coursegrid/internal/domain/lecture"
)

// Source reads one catalog partition. Reads are idempotent.
type Source interface {
	FetchPartition(ctx context.Context, partition Partition) ([]lecture.Lecture, error)
}
