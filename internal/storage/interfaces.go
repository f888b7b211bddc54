package storage

import (
	"context"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
)

// TokenRecordStore provides access to the durable record of created
// tokens. MintAddress is the natural key: at most one record exists per
// mint address.
type TokenRecordStore interface {
	// Save persists a token record. Saving a record whose MintAddress
	// already exists is a silent no-op: no error, no duplicate.
	Save(ctx context.Context, t *domain.StoredToken) error

	// GetAll retrieves all records in insertion order, most recent first.
	GetAll(ctx context.Context) ([]*domain.StoredToken, error)

	// GetByMintAddress retrieves a record by mint address.
	// Returns ErrNotFound if not exists.
	GetByMintAddress(ctx context.Context, addr string) (*domain.StoredToken, error)

	// ClearAll removes every record. The only way records are deleted.
	ClearAll(ctx context.Context) error
}

// CreationEventStore provides access to creation_events analytics
// storage. Append-only; events are never updated or removed.
type CreationEventStore interface {
	// Insert adds a new creation event.
	Insert(ctx context.Context, e *domain.CreationEvent) error

	// GetByMintAddress retrieves all events recorded for a mint address,
	// ordered by creation time ASC.
	GetByMintAddress(ctx context.Context, addr string) ([]*domain.CreationEvent, error)
}
