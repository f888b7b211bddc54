// Package stub provides a deterministic Minter for tests and offline
// development.
package stub

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/mr-tron/base58"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/minting"
)

// Minter implements minting.Minter without touching the chain. The mint
// address is derived deterministically from the request so repeated
// calls with the same parameters produce the same address.
type Minter struct {
	mu    sync.Mutex
	Err   error                  // when set, every Mint call fails with it
	Calls []minting.MintRequest // every request seen, in order
}

// NewMinter creates a stub minter.
func NewMinter() *Minter {
	return &Minter{}
}

// Compile-time interface check.
var _ minting.Minter = (*Minter)(nil)

// Mint records the request and answers with a derived address.
func (m *Minter) Mint(_ context.Context, req minting.MintRequest) (*minting.MintResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if m.Err != nil {
		return nil, &minting.Error{Reason: "stub", Err: m.Err}
	}

	seed := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", req.Name, req.Symbol, req.Decimals, req.Supply)))
	sig := sha256.Sum256(append(seed[:], 's'))

	return &minting.MintResult{
		MintAddress: base58.Encode(seed[:]),
		Signature:   base58.Encode(sig[:]),
	}, nil
}

// CallCount reports how many mints were attempted.
func (m *Minter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
