package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
)

// DefaultExtension is used when the original filename carries none.
const DefaultExtension = ".png"

// LocalStore writes assets to a local directory under generated unique
// names and serves them back under a predictable URL prefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore creates a local asset store rooted at dir. References
// are built as urlPrefix + "/" + generated name.
func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return &LocalStore{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}
}

// Upload writes the asset under a freshly generated name, preserving
// the original extension. Name collisions are negligible: names come
// from a v4 UUID (crypto/rand backed). Failures are *Error with stage
// store and are fatal for the upload workflow.
func (s *LocalStore) Upload(_ context.Context, data []byte, filename string) (*domain.AssetReference, error) {
	if len(data) == 0 {
		return nil, NewError(StageStore, errEmptyAsset)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, NewError(StageStore, fmt.Errorf("create upload dir: %w", err))
	}

	name := uuid.NewString() + extensionOf(filename)
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, NewError(StageStore, fmt.Errorf("write asset: %w", err))
	}

	return &domain.AssetReference{
		URI:    s.urlPrefix + "/" + name,
		Origin: domain.OriginLocalFallback,
	}, nil
}

// extensionOf returns the file extension including the dot, defaulting
// when absent.
func extensionOf(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return DefaultExtension
	}
	return strings.ToLower(ext)
}

var _ Uploader = (*LocalStore)(nil)
