package usecases_test

import (
	"context"

	"github.com/unaigarro/mapstamp/internal/core/domain"
)

// --- Mock SettingRepository ---

type mockSettingRepo struct {
	getFn func(ctx context.Context, name string) (*domain.Setting, error)
	setFn func(ctx context.Context, name, value string) error
}

func (m *mockSettingRepo) Get(ctx context.Context, name string) (*domain.Setting, error) {
	if m.getFn != nil {
		return m.getFn(ctx, name)
	}
	return nil, nil
}

func (m *mockSettingRepo) Set(ctx context.Context, name, value string) error {
	if m.setFn != nil {
		return m.setFn(ctx, name, value)
	}
	return nil
}

// --- Mock SnapshotRepository ---

type mockSnapshotRepo struct {
	insertFn  func(ctx context.Context, snap *domain.Snapshot) error
	getByIDFn func(ctx context.Context, id string) (*domain.Snapshot, error)
	listFn    func(ctx context.Context, offset, limit int) ([]domain.Snapshot, error)
	countFn   func(ctx context.Context) (int, error)
}

func (m *mockSnapshotRepo) Insert(ctx context.Context, snap *domain.Snapshot) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, snap)
	}
	return nil
}

func (m *mockSnapshotRepo) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSnapshotRepo) List(ctx context.Context, offset, limit int) ([]domain.Snapshot, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, nil
}

func (m *mockSnapshotRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

// --- Mock ImageFetcher ---

type mockFetcher struct {
	fetchFn func(ctx context.Context, url string) (*domain.FetchedImage, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (*domain.FetchedImage, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, url)
	}
	return &domain.FetchedImage{Status: 200, ContentType: "image/png"}, nil
}

// --- Mock MediaStore ---

type mockMediaStore struct {
	storeFn func(ctx context.Context, data []byte, meta domain.MediaMeta) (*domain.StoredFile, error)
}

func (m *mockMediaStore) Store(ctx context.Context, data []byte, meta domain.MediaMeta) (*domain.StoredFile, error) {
	if m.storeFn != nil {
		return m.storeFn(ctx, data, meta)
	}
	return &domain.StoredFile{Path: "maps/" + meta.Filename, SizeBytes: int64(len(data))}, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	requestedFn func(ctx context.Context, req *domain.SnapshotRequest) error
	storedFn    func(ctx context.Context, snap *domain.Snapshot) error
}

func (m *mockPublisher) PublishSnapshotRequested(ctx context.Context, req *domain.SnapshotRequest) error {
	if m.requestedFn != nil {
		return m.requestedFn(ctx, req)
	}
	return nil
}

func (m *mockPublisher) PublishSnapshotStored(ctx context.Context, snap *domain.Snapshot) error {
	if m.storedFn != nil {
		return m.storedFn(ctx, snap)
	}
	return nil
}

// --- Mock CacheService ---

type mockCache struct {
	store map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.store[key]; ok {
		return v, nil
	}
	return nil, context.Canceled // any error signals a miss
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.store[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.store, key)
	return nil
}
