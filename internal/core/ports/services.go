package ports

import (
	"context"

	"github.com/unaigarro/mapstamp/internal/core/domain"
)

// EventPublisher publishes snapshot lifecycle events to a message broker.
type EventPublisher interface {
	PublishSnapshotRequested(ctx context.Context, req *domain.SnapshotRequest) error
	PublishSnapshotStored(ctx context.Context, snap *domain.Snapshot) error
}

// EventSubscriber subscribes to snapshot events from a message broker.
type EventSubscriber interface {
	SubscribeSnapshotRequests(ctx context.Context, handler func(ctx context.Context, req *domain.SnapshotRequest) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// ImageFetcher performs the outbound HTTP GET for a built map URL.
// Timeouts, rate limiting, and retries are the implementation's
// concern; failures are returned unchanged to the caller.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.FetchedImage, error)
}

// MediaStore writes downloaded images into the media library.
type MediaStore interface {
	Store(ctx context.Context, data []byte, meta domain.MediaMeta) (*domain.StoredFile, error)
}
