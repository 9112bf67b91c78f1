package timetable

import (
	"log/slog"
	"sync"
)

// Registry keeps one Store per tenant, created on first use.
type Registry struct {
	initialID string
	logger    *slog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry creates a registry whose stores start with a table named
// initialID.
func NewRegistry(initialID string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{initialID: initialID, logger: logger, stores: make(map[string]*Store)}
}

// For returns the tenant's store.
func (r *Registry) For(tenantID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stores[tenantID]
	if !ok {
		st = NewStore(r.initialID, r.logger.With("tenant_id", tenantID))
		r.stores[tenantID] = st
	}
	return st
}
