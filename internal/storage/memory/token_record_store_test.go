package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage"
)

func TestTokenRecordStore_SaveAndGet(t *testing.T) {
	store := NewTokenRecordStore()
	ctx := context.Background()

	token := &domain.StoredToken{
		ID:          "rec1",
		Name:        "Test",
		Symbol:      "TST",
		MintAddress: "Addr1",
		ImageURI:    "https://gateway.pinata.cloud/ipfs/Qm123",
		CreatedAt:   1700000000000,
		Supply:      "1000000",
		Decimals:    "9",
	}

	if err := store.Save(ctx, token); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByMintAddress(ctx, "Addr1")
	if err != nil {
		t.Fatalf("GetByMintAddress failed: %v", err)
	}

	if got.Symbol != "TST" {
		t.Errorf("Symbol mismatch: got %s, want TST", got.Symbol)
	}
	if got.Decimals != "9" || got.Supply != "1000000" {
		t.Errorf("unexpected decimals/supply: %s/%s", got.Decimals, got.Supply)
	}
}

func TestTokenRecordStore_SaveIdempotent(t *testing.T) {
	store := NewTokenRecordStore()
	ctx := context.Background()

	token := &domain.StoredToken{ID: "rec1", Name: "Test", Symbol: "TST", MintAddress: "Addr1"}

	if err := store.Save(ctx, token); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	// Second save with same mint address: silent no-op.
	dup := &domain.StoredToken{ID: "rec2", Name: "Other", Symbol: "OTH", MintAddress: "Addr1"}
	if err := store.Save(ctx, dup); err != nil {
		t.Fatalf("duplicate Save returned error: %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", len(all))
	}
	// Original record wins.
	if all[0].Name != "Test" {
		t.Errorf("expected original record preserved, got %s", all[0].Name)
	}
}

func TestTokenRecordStore_GetAllMostRecentFirst(t *testing.T) {
	store := NewTokenRecordStore()
	ctx := context.Background()

	for _, addr := range []string{"AddrA", "AddrB", "AddrC"} {
		if err := store.Save(ctx, &domain.StoredToken{ID: addr, MintAddress: addr}); err != nil {
			t.Fatalf("Save %s failed: %v", addr, err)
		}
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	want := []string{"AddrC", "AddrB", "AddrA"}
	for i, addr := range want {
		if all[i].MintAddress != addr {
			t.Errorf("position %d: expected %s, got %s", i, addr, all[i].MintAddress)
		}
	}
}

func TestTokenRecordStore_NotFound(t *testing.T) {
	store := NewTokenRecordStore()

	_, err := store.GetByMintAddress(context.Background(), "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTokenRecordStore_ClearAll(t *testing.T) {
	store := NewTokenRecordStore()
	ctx := context.Background()

	store.Save(ctx, &domain.StoredToken{ID: "r1", MintAddress: "Addr1"})
	store.Save(ctx, &domain.StoredToken{ID: "r2", MintAddress: "Addr2"})

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty store after ClearAll, got %d records", len(all))
	}
}

func TestTokenRecordStore_InvalidInput(t *testing.T) {
	store := NewTokenRecordStore()
	ctx := context.Background()

	if err := store.Save(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil, got %v", err)
	}
	if err := store.Save(ctx, &domain.StoredToken{ID: "r1"}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty mint address, got %v", err)
	}
}

func TestCreationEventStore_InsertAndGet(t *testing.T) {
	store := NewCreationEventStore()
	ctx := context.Background()

	events := []*domain.CreationEvent{
		{EventID: "e2", MintAddress: "Addr1", Stage: domain.StageComplete, Outcome: domain.OutcomeOK, CreatedAt: 2000},
		{EventID: "e1", MintAddress: "Addr1", Stage: domain.StageMint, Outcome: domain.OutcomeOK, CreatedAt: 1000},
		{EventID: "e3", MintAddress: "Addr2", Stage: domain.StageMint, Outcome: domain.OutcomeError, CreatedAt: 1500},
	}
	for _, e := range events {
		if err := store.Insert(ctx, e); err != nil {
			t.Fatalf("Insert %s failed: %v", e.EventID, err)
		}
	}

	got, err := store.GetByMintAddress(ctx, "Addr1")
	if err != nil {
		t.Fatalf("GetByMintAddress failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	// Ordered by creation time ASC.
	if got[0].EventID != "e1" || got[1].EventID != "e2" {
		t.Errorf("unexpected order: %s, %s", got[0].EventID, got[1].EventID)
	}
}

func TestCreationEventStore_InvalidInput(t *testing.T) {
	store := NewCreationEventStore()

	err := store.Insert(context.Background(), &domain.CreationEvent{})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
