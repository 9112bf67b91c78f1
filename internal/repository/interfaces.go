package repository

import (
	"context"

	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/lecture"
)

// LectureRepository mirrors catalog partitions in local storage
type LectureRepository interface {
	catalog.Source
	ReplacePartition(ctx context.Context, partition string, lectures []lecture.Lecture) (int, error)
	CountPartitions(ctx context.Context) (map[string]int, error)
}

// APIKeyRepository manages hashed API keys that map bearer tokens to tenants
type APIKeyRepository interface {
	Add(ctx context.Context, token, tenantID, description string) error
	ResolveTenant(ctx context.Context, token string) (string, error)
}
