package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage"
)

// TokenRecordStore is an in-memory implementation of storage.TokenRecordStore.
type TokenRecordStore struct {
	mu   sync.RWMutex
	data map[string]*domain.StoredToken // keyed by mint address
	seq  map[string]int                 // insertion order per mint address
	next int
}

// NewTokenRecordStore creates a new in-memory token record store.
func NewTokenRecordStore() *TokenRecordStore {
	return &TokenRecordStore{
		data: make(map[string]*domain.StoredToken),
		seq:  make(map[string]int),
	}
}

// Save persists a token record. Dedup-on-insert: an existing MintAddress
// makes the call a silent no-op.
func (s *TokenRecordStore) Save(_ context.Context, t *domain.StoredToken) error {
	if t == nil || t.MintAddress == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.MintAddress]; exists {
		return nil
	}

	copy := *t
	s.data[t.MintAddress] = &copy
	s.seq[t.MintAddress] = s.next
	s.next++
	return nil
}

// GetAll retrieves all records in insertion order, most recent first.
func (s *TokenRecordStore) GetAll(_ context.Context) ([]*domain.StoredToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.StoredToken, 0, len(s.data))
	for _, t := range s.data {
		copy := *t
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		return s.seq[result[i].MintAddress] > s.seq[result[j].MintAddress]
	})

	return result, nil
}

// GetByMintAddress retrieves a record by mint address. Returns
// ErrNotFound if not exists.
func (s *TokenRecordStore) GetByMintAddress(_ context.Context, addr string) (*domain.StoredToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[addr]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *t
	return &copy, nil
}

// ClearAll removes every record.
func (s *TokenRecordStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]*domain.StoredToken)
	s.seq = make(map[string]int)
	s.next = 0
	return nil
}

var _ storage.TokenRecordStore = (*TokenRecordStore)(nil)
