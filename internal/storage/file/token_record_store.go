// Package file implements storage.TokenRecordStore over a single JSON
// document on disk, mirroring the durable key-value blob the browser
// wizard keeps its created-token list in. Every operation reads or
// rewrites the whole document; correctness assumes a single writer per
// session.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage"
)

// DefaultBlobName is the fixed name the record list is stored under.
const DefaultBlobName = "created_tokens.json"

// tokenRecord is the on-disk encoding of a StoredToken.
type tokenRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	MintAddress string `json:"mintAddress"`
	ImageURI    string `json:"image,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
	Supply      string `json:"supply"`
	Decimals    string `json:"decimals"`
}

// TokenRecordStore is a file-backed implementation of storage.TokenRecordStore.
type TokenRecordStore struct {
	mu   sync.Mutex
	path string
}

// NewTokenRecordStore creates a file-backed token record store under dir.
func NewTokenRecordStore(dir string) *TokenRecordStore {
	return &TokenRecordStore{path: filepath.Join(dir, DefaultBlobName)}
}

// Save persists a token record. Dedup-on-insert: an existing MintAddress
// makes the call a silent no-op.
func (s *TokenRecordStore) Save(_ context.Context, t *domain.StoredToken) error {
	if t == nil || t.MintAddress == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	for _, r := range records {
		if r.MintAddress == t.MintAddress {
			return nil
		}
	}

	records = append(records, tokenRecord{
		ID:          t.ID,
		Name:        t.Name,
		Symbol:      t.Symbol,
		MintAddress: t.MintAddress,
		ImageURI:    t.ImageURI,
		CreatedAt:   t.CreatedAt,
		Supply:      t.Supply,
		Decimals:    t.Decimals,
	})

	return s.write(records)
}

// GetAll retrieves all records in insertion order, most recent first.
func (s *TokenRecordStore) GetAll(_ context.Context) ([]*domain.StoredToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	result := make([]*domain.StoredToken, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		result = append(result, records[i].toDomain())
	}
	return result, nil
}

// GetByMintAddress retrieves a record by mint address. Returns
// ErrNotFound if not exists.
func (s *TokenRecordStore) GetByMintAddress(_ context.Context, addr string) (*domain.StoredToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		if r.MintAddress == addr {
			return r.toDomain(), nil
		}
	}
	return nil, storage.ErrNotFound
}

// ClearAll removes every record by rewriting an empty document.
func (s *TokenRecordStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write([]tokenRecord{})
}

// load reads the whole document. A missing file is an empty store.
func (s *TokenRecordStore) load() ([]tokenRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", storage.ErrUnavailable, s.path, err)
	}

	var records []tokenRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", storage.ErrUnavailable, s.path, err)
	}
	return records, nil
}

// write rewrites the whole document.
func (s *TokenRecordStore) write(records []tokenRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: create dir: %v", storage.ErrUnavailable, err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", storage.ErrUnavailable, s.path, err)
	}
	return nil
}

func (r tokenRecord) toDomain() *domain.StoredToken {
	return &domain.StoredToken{
		ID:          r.ID,
		Name:        r.Name,
		Symbol:      r.Symbol,
		MintAddress: r.MintAddress,
		ImageURI:    r.ImageURI,
		CreatedAt:   r.CreatedAt,
		Supply:      r.Supply,
		Decimals:    r.Decimals,
	}
}

var _ storage.TokenRecordStore = (*TokenRecordStore)(nil)
