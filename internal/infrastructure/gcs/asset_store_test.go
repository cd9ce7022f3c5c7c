package gcs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/resepku/recipe-api/internal/application"
)

// The size cap is checked before the bucket is touched, so these run without
// a storage client.

func TestUploadRejectsOversizedPhoto(t *testing.T) {
	s := NewStore(nil, "photos", 1024, time.Second)

	_, err := s.Upload(context.Background(), "recipes", application.PhotoUpload{
		Filename:    "huge.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
		Reader:      strings.NewReader("x"),
	})
	if !errors.Is(err, application.ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestReleaseEmptyAssetIsNoop(t *testing.T) {
	s := NewStore(nil, "photos", 0, time.Second)
	if err := s.Release(context.Background(), ""); err != nil {
		t.Fatalf("empty asset id must be a no-op, got %v", err)
	}
}
