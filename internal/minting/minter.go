// Package minting talks to the external minting service that builds,
// signs and submits the on-chain token creation. The service is opaque
// to this module: it takes validated parameters plus an asset URI and
// answers with a mint address, or an error.
package minting

import (
	"context"
	"fmt"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
)

// MintRequest carries the validated parameters handed to the minting
// service.
type MintRequest struct {
	Name     string
	Symbol   string
	Decimals int
	Supply   string
	ImageURI string // empty when no image was uploaded
	Flags    domain.AuthorityFlags
}

// MintResult is the minting service's answer for a successful mint.
type MintResult struct {
	MintAddress string // on-chain mint address
	Signature   string // transaction signature of the creation
}

// Minter performs the on-chain token creation.
type Minter interface {
	Mint(ctx context.Context, req MintRequest) (*MintResult, error)
}

// Error wraps a minting service failure. The cause is passed through
// opaquely; the workflow aborts and persists nothing.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mint failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("mint failed: %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}
