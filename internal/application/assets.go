package application

import (
	"context"
	"io"

	"github.com/resepku/recipe-api/internal/domain/entity"
)

// PhotoUpload carries an incoming photo from the transport layer into the
// asset store. Size is the declared payload size; the store rejects anything
// over its cap before touching the network.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// AssetStore is the gateway to the external content store. Upload returns a
// stable handle; Release is best-effort deletion whose failures callers log
// rather than escalate.
type AssetStore interface {
	Upload(ctx context.Context, folder string, p PhotoUpload) (entity.PhotoAsset, error)
	Release(ctx context.Context, assetID string) error
}

// Publisher abstracts the message queue used for fire-and-forget jobs.
// *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
