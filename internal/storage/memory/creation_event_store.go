package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage"
)

// CreationEventStore is an in-memory implementation of storage.CreationEventStore.
type CreationEventStore struct {
	mu   sync.RWMutex
	data []*domain.CreationEvent
}

// NewCreationEventStore creates a new in-memory creation event store.
func NewCreationEventStore() *CreationEventStore {
	return &CreationEventStore{}
}

// Insert adds a new creation event.
func (s *CreationEventStore) Insert(_ context.Context, e *domain.CreationEvent) error {
	if e == nil || e.EventID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *e
	s.data = append(s.data, &copy)
	return nil
}

// GetByMintAddress retrieves all events for a mint address, ordered by
// creation time ASC.
func (s *CreationEventStore) GetByMintAddress(_ context.Context, addr string) ([]*domain.CreationEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.CreationEvent
	for _, e := range s.data {
		if e.MintAddress == addr {
			copy := *e
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt < result[j].CreatedAt
	})

	return result, nil
}

var _ storage.CreationEventStore = (*CreationEventStore)(nil)
