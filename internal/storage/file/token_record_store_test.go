package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/storage"
)

func TestTokenRecordStore_SaveAndGet(t *testing.T) {
	store := NewTokenRecordStore(t.TempDir())
	ctx := context.Background()

	token := &domain.StoredToken{
		ID:          "rec1",
		Name:        "Test",
		Symbol:      "TST",
		MintAddress: "Addr1",
		ImageURI:    "/uploads/abc.png",
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
	if got.Name != "Test" || got.ImageURI != "/uploads/abc.png" {
		t.Errorf("record mismatch: %+v", got)
	}
}

func TestTokenRecordStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := NewTokenRecordStore(dir)
	if err := store.Save(ctx, &domain.StoredToken{ID: "r1", MintAddress: "Addr1", Symbol: "TST"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A new store over the same directory sees the record.
	reopened := NewTokenRecordStore(dir)
	got, err := reopened.GetByMintAddress(ctx, "Addr1")
	if err != nil {
		t.Fatalf("GetByMintAddress after reopen failed: %v", err)
	}
	if got.Symbol != "TST" {
		t.Errorf("expected TST, got %s", got.Symbol)
	}
}

func TestTokenRecordStore_SaveIdempotent(t *testing.T) {
	store := NewTokenRecordStore(t.TempDir())
	ctx := context.Background()

	if err := store.Save(ctx, &domain.StoredToken{ID: "r1", MintAddress: "Addr1", Name: "First"}); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := store.Save(ctx, &domain.StoredToken{ID: "r2", MintAddress: "Addr1", Name: "Second"}); err != nil {
		t.Fatalf("duplicate Save returned error: %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
	if all[0].Name != "First" {
		t.Errorf("expected original record preserved, got %s", all[0].Name)
	}
}

func TestTokenRecordStore_GetAllMostRecentFirst(t *testing.T) {
	store := NewTokenRecordStore(t.TempDir())
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

func TestTokenRecordStore_ClearAll(t *testing.T) {
	store := NewTokenRecordStore(t.TempDir())
	ctx := context.Background()

	store.Save(ctx, &domain.StoredToken{ID: "r1", MintAddress: "Addr1"})

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty store, got %d records", len(all))
	}
}

func TestTokenRecordStore_EmptyStore(t *testing.T) {
	store := NewTokenRecordStore(t.TempDir())
	ctx := context.Background()

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll on empty store failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no records, got %d", len(all))
	}

	_, err = store.GetByMintAddress(ctx, "Addr1")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTokenRecordStore_CorruptBlobUnavailable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultBlobName), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt blob: %v", err)
	}

	store := NewTokenRecordStore(dir)
	_, err := store.GetAll(context.Background())
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
