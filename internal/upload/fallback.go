package upload

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
)

// FallbackUploader chains upload tiers: each tier is tried in order and
// any failure falls through to the next. The last tier's failure is
// returned as-is. Additional tiers (e.g. a second pinning provider) can
// be inserted without touching the orchestrator.
type FallbackUploader struct {
	tiers  []Uploader
	logger *logrus.Logger
}

// NewFallbackUploader creates a chain over the given tiers, primary
// first.
func NewFallbackUploader(logger *logrus.Logger, tiers ...Uploader) *FallbackUploader {
	if logger == nil {
		logger = logrus.New()
	}
	return &FallbackUploader{tiers: tiers, logger: logger}
}

// Upload validates the asset once, then walks the tiers. The returned
// reference is whichever tier first succeeded; the caller can inspect
// Origin to learn which one.
func (f *FallbackUploader) Upload(ctx context.Context, data []byte, filename string) (*domain.AssetReference, error) {
	// Reject before attempting either tier.
	if len(data) == 0 {
		return nil, NewError(StagePin, errEmptyAsset)
	}

	var lastErr error
	for i, tier := range f.tiers {
		ref, err := tier.Upload(ctx, data, filename)
		if err == nil {
			return ref, nil
		}
		lastErr = err

		if i < len(f.tiers)-1 {
			f.logger.Warnf("upload tier %d failed, falling back: %v", i+1, err)
		}
	}

	return nil, lastErr
}

var _ Uploader = (*FallbackUploader)(nil)
