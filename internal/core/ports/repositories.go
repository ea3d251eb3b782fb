package ports

import (
	"context"

	"github.com/unaigarro/mapstamp/internal/core/domain"
)

// SettingRepository persists named configuration values (the API key).
type SettingRepository interface {
	Get(ctx context.Context, name string) (*domain.Setting, error)
	Set(ctx context.Context, name, value string) error
}

// SnapshotRepository persists stored map image records.
type SnapshotRepository interface {
	Insert(ctx context.Context, snap *domain.Snapshot) error
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	List(ctx context.Context, offset, limit int) ([]domain.Snapshot, error)
	Count(ctx context.Context) (int, error)
}
