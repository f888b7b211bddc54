package clickhouse

import (
	"context"
	"fmt"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage"
)

// CreationEventStore implements storage.CreationEventStore using ClickHouse.
// MergeTree is append-only by nature, which matches the event contract.
type CreationEventStore struct {
	conn *Conn
}

// NewCreationEventStore creates a new CreationEventStore.
func NewCreationEventStore(conn *Conn) *CreationEventStore {
	return &CreationEventStore{conn: conn}
}

// Compile-time interface check.
var _ storage.CreationEventStore = (*CreationEventStore)(nil)

// Insert adds a new creation event.
func (s *CreationEventStore) Insert(ctx context.Context, e *domain.CreationEvent) error {
	if e == nil || e.EventID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO creation_events (
			event_id, mint_address, name, symbol,
			stage, outcome, detail, asset_origin,
			duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := s.conn.Exec(ctx, query,
		e.EventID, e.MintAddress, e.Name, e.Symbol,
		e.Stage, e.Outcome, e.Detail, e.AssetOrigin,
		e.DurationMs, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert creation event: %w", err)
	}
	return nil
}

// GetByMintAddress retrieves all events for a mint address, ordered by
// creation time ASC.
func (s *CreationEventStore) GetByMintAddress(ctx context.Context, addr string) ([]*domain.CreationEvent, error) {
	query := `
		SELECT event_id, mint_address, name, symbol,
		       stage, outcome, detail, asset_origin,
		       duration_ms, created_at
		FROM creation_events
		WHERE mint_address = ?
		ORDER BY created_at ASC
	`

	rows, err := s.conn.Query(ctx, query, addr)
	if err != nil {
		return nil, fmt.Errorf("query creation events: %w", err)
	}
	defer rows.Close()

	var result []*domain.CreationEvent
	for rows.Next() {
		var e domain.CreationEvent
		err := rows.Scan(
			&e.EventID, &e.MintAddress, &e.Name, &e.Symbol,
			&e.Stage, &e.Outcome, &e.Detail, &e.AssetOrigin,
			&e.DurationMs, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan creation event: %w", err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate creation events: %w", err)
	}
	return result, nil
}
