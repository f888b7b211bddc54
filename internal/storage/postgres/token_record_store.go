package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage"
)

// TokenRecordStore implements storage.TokenRecordStore using PostgreSQL.
type TokenRecordStore struct {
	pool *Pool
}

// NewTokenRecordStore creates a new TokenRecordStore.
func NewTokenRecordStore(pool *Pool) *TokenRecordStore {
	return &TokenRecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenRecordStore = (*TokenRecordStore)(nil)

// Save persists a token record. Dedup-on-insert on mint_address: an
// existing record makes the call a silent no-op.
func (s *TokenRecordStore) Save(ctx context.Context, t *domain.StoredToken) error {
	if t == nil || t.MintAddress == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO created_tokens (
			id, name, symbol, mint_address, image_uri, created_at, supply, decimals
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (mint_address) DO NOTHING
	`

	_, err := s.pool.Exec(ctx, query,
		t.ID,
		t.Name,
		t.Symbol,
		t.MintAddress,
		t.ImageURI,
		t.CreatedAt,
		t.Supply,
		t.Decimals,
	)
	if err != nil {
		return fmt.Errorf("%w: save token record: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// GetAll retrieves all records in insertion order, most recent first.
func (s *TokenRecordStore) GetAll(ctx context.Context) ([]*domain.StoredToken, error) {
	query := `
		SELECT id, name, symbol, mint_address, image_uri, created_at, supply, decimals
		FROM created_tokens
		ORDER BY seq DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: get all token records: %v", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var result []*domain.StoredToken
	for rows.Next() {
		t, err := scanStoredToken(rows)
		if err != nil {
			return nil, fmt.Errorf("scan token record: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token records: %w", err)
	}
	return result, nil
}

// GetByMintAddress retrieves a record by mint address. Returns
// ErrNotFound if not exists.
func (s *TokenRecordStore) GetByMintAddress(ctx context.Context, addr string) (*domain.StoredToken, error) {
	query := `
		SELECT id, name, symbol, mint_address, image_uri, created_at, supply, decimals
		FROM created_tokens
		WHERE mint_address = $1
	`

	row := s.pool.QueryRow(ctx, query, addr)
	t, err := scanStoredToken(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get token record by mint address: %w", err)
	}
	return t, nil
}

// ClearAll removes every record.
func (s *TokenRecordStore) ClearAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM created_tokens`); err != nil {
		return fmt.Errorf("%w: clear token records: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// scanStoredToken scans a single row into StoredToken.
func scanStoredToken(row pgx.Row) (*domain.StoredToken, error) {
	var t domain.StoredToken

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Symbol,
		&t.MintAddress,
		&t.ImageURI,
		&t.CreatedAt,
		&t.Supply,
		&t.Decimals,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
