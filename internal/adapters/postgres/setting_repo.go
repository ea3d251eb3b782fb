package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/unaigarro/mapstamp/internal/core/domain"
)

// SettingRepo implements ports.SettingRepository.
type SettingRepo struct {
	db *DB
}

func NewSettingRepo(db *DB) *SettingRepo {
	return &SettingRepo{db: db}
}

// Get returns the named setting, or nil when it has never been set.
func (r *SettingRepo) Get(ctx context.Context, name string) (*domain.Setting, error) {
	s := &domain.Setting{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT name, value, updated_at FROM settings WHERE name = $1
	`, name).Scan(&s.Name, &s.Value, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SettingRepo) Set(ctx context.Context, name, value string) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO settings (name, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, name, value)
	return err
}
