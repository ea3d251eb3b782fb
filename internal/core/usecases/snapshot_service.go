package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/unaigarro/mapstamp/internal/core/domain"
	"github.com/unaigarro/mapstamp/internal/core/ports"
)

// SnapshotService downloads built map URLs and stores the images in
// the media library. Requests arrive either synchronously (Process)
// or through the broker (Request, consumed by the snapshot worker).
type SnapshotService struct {
	snaps   ports.SnapshotRepository
	media   ports.MediaStore
	fetcher ports.ImageFetcher
	events  ports.EventPublisher
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(snaps ports.SnapshotRepository, media ports.MediaStore, fetcher ports.ImageFetcher, events ports.EventPublisher) *SnapshotService {
	return &SnapshotService{snaps: snaps, media: media, fetcher: fetcher, events: events}
}

// Request validates and enqueues a snapshot request on the broker for
// asynchronous processing by the worker.
func (s *SnapshotService) Request(ctx context.Context, req *domain.SnapshotRequest) error {
	if err := normalizeRequest(req); err != nil {
		return err
	}
	if s.events == nil {
		return fmt.Errorf("event publisher not configured")
	}
	return s.events.PublishSnapshotRequested(ctx, req)
}

// Process downloads the image behind the request URL, stores it in the
// media library, and records the snapshot. A non-200 answer from the
// API is an error; fetcher failures propagate unchanged.
func (s *SnapshotService) Process(ctx context.Context, req *domain.SnapshotRequest) (*domain.Snapshot, error) {
	if err := normalizeRequest(req); err != nil {
		return nil, err
	}

	img, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	if img.Status != 200 {
		return nil, fmt.Errorf("map image fetch returned status %d", img.Status)
	}

	stored, err := s.media.Store(ctx, img.Body, domain.MediaMeta{
		Title:       req.Title,
		Filename:    req.Filename,
		AltText:     req.AltText,
		Folder:      req.Folder,
		ContentType: img.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("store media: %w", err)
	}

	snap := &domain.Snapshot{
		Title:       req.Title,
		Filename:    req.Filename,
		AltText:     req.AltText,
		Folder:      req.Folder,
		URL:         req.URL,
		Path:        stored.Path,
		ContentType: img.ContentType,
		SizeBytes:   stored.SizeBytes,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.snaps.Insert(ctx, snap); err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	if s.events != nil {
		_ = s.events.PublishSnapshotStored(ctx, snap)
	}
	return snap, nil
}

// List returns stored snapshots, newest first, with the total count
// for pagination.
func (s *SnapshotService) List(ctx context.Context, offset, limit int) ([]domain.Snapshot, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	total, err := s.snaps.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	snaps, err := s.snaps.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return snaps, total, nil
}

// GetByID returns a single stored snapshot.
func (s *SnapshotService) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	return s.snaps.GetByID(ctx, id)
}

func normalizeRequest(req *domain.SnapshotRequest) error {
	if req.URL == "" {
		return fmt.Errorf("snapshot url must not be empty")
	}
	if req.Title == "" {
		req.Title = "Static map"
	}
	if req.Filename == "" {
		req.Filename = slugify(req.Title)
	}
	return nil
}

// slugify reduces a title to a safe filename stem.
func slugify(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			sb.WriteByte('-')
		}
	}
	out := strings.Trim(sb.String(), "-")
	if out == "" {
		out = "static-map"
	}
	return out
}
