package mocks

import (
	"context"

	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"github.com/stretchr/testify/mock"
)

// Source is a mock for catalog.Source.
type Source struct {
	mock.Mock
}

func (m *Source) FetchPartition(ctx context.Context, partition catalog.Partition) ([]lecture.Lecture, error) {
	args := m.Called(ctx, partition)
	if lectures, ok := args.Get(0).([]lecture.Lecture); ok {
		return lectures, args.Error(1)
	}
	return nil, args.Error(1)
}

// TenantResolver is a mock for transport.TenantResolver and mcp.TenantResolver.
type TenantResolver struct {
	mock.Mock
}

func (m *TenantResolver) ResolveTenant(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}
