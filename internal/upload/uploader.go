// Package upload moves image assets to durable storage and hands back a
// stable reference URI. The primary tier pins to a remote service; on
// any remote failure the asset falls back to local disk.
package upload

import (
	"context"
	"errors"
	"fmt"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
)

// errEmptyAsset rejects zero-length assets before any tier is attempted.
var errEmptyAsset = errors.New("empty asset")

// Stage identifies which upload tier an error originated from.
type Stage string

const (
	// StagePin is the remote pinning tier.
	StagePin Stage = "pin"
	// StageStore is the local fallback tier.
	StageStore Stage = "store"
)

// Uploader stores an asset and returns its reference.
type Uploader interface {
	// Upload stores data under filename and returns a stable reference.
	// The filename's extension is preserved in the stored name where the
	// tier generates its own names.
	Upload(ctx context.Context, data []byte, filename string) (*domain.AssetReference, error)
}

// Error is an upload failure attributed to a specific tier, so callers
// can report "upload failed entirely" vs "fallback storage failed".
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("upload failed at %s tier: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an upload error for a tier.
func NewError(stage Stage, err error) *Error {
	return &Error{Stage: stage, Err: err}
}
