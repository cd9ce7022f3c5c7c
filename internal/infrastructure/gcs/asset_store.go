package gcs

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/resepku/recipe-api/internal/application"
	"github.com/resepku/recipe-api/internal/domain/entity"
	"github.com/resepku/recipe-api/pkg/helpers"
)

// Store uploads photo assets to a GCS bucket and deletes them on release.
// The object path doubles as the asset id. Construction takes the bucket and
// limits explicitly so tests can substitute a fake store.
type Store struct {
	Client   *storage.Client
	Bucket   string
	MaxBytes int64
	Timeout  time.Duration
}

func NewStore(client *storage.Client, bucket string, maxBytes int64, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Store{Client: client, Bucket: bucket, MaxBytes: maxBytes, Timeout: timeout}
}

func (s *Store) Upload(ctx context.Context, folder string, p application.PhotoUpload) (entity.PhotoAsset, error) {
	if s.MaxBytes > 0 && p.Size > s.MaxBytes {
		return entity.PhotoAsset{}, application.ErrPayloadTooLarge
	}

	ext := strings.ToLower(filepath.Ext(p.Filename))
	objectPath := path.Join(folder, uuid.NewString()+ext)

	// A hung upload must not hold the request forever; it surfaces as an
	// upload failure instead.
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	url, err := helpers.UploadObject(ctx, s.Client, s.Bucket, objectPath, p.ContentType, p.Reader)
	if err != nil {
		return entity.PhotoAsset{}, fmt.Errorf("%w: %v", application.ErrUploadFailed, err)
	}
	return entity.PhotoAsset{AssetID: objectPath, URL: url}, nil
}

func (s *Store) Release(ctx context.Context, assetID string) error {
	if assetID == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return helpers.DeleteObject(ctx, s.Client, s.Bucket, assetID)
}

var _ application.AssetStore = (*Store)(nil)
