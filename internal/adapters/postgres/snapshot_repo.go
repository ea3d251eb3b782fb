package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/unaigarro/mapstamp/internal/core/domain"
)

// SnapshotRepo implements ports.SnapshotRepository.
type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

func (r *SnapshotRepo) Insert(ctx context.Context, snap *domain.Snapshot) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO snapshots (title, filename, alt_text, folder, url, path, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, snap.Title, snap.Filename, snap.AltText, snap.Folder, snap.URL,
		snap.Path, snap.ContentType, snap.SizeBytes, snap.CreatedAt,
	).Scan(&snap.ID)
}

func (r *SnapshotRepo) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	s := &domain.Snapshot{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, title, filename, COALESCE(alt_text, ''), COALESCE(folder, ''),
		       url, path, content_type, size_bytes, created_at
		FROM snapshots WHERE id = $1
	`, id).Scan(&s.ID, &s.Title, &s.Filename, &s.AltText, &s.Folder,
		&s.URL, &s.Path, &s.ContentType, &s.SizeBytes, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SnapshotRepo) List(ctx context.Context, offset, limit int) ([]domain.Snapshot, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, title, filename, COALESCE(alt_text, ''), COALESCE(folder, ''),
		       url, path, content_type, size_bytes, created_at
		FROM snapshots ORDER BY created_at DESC OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []domain.Snapshot
	for rows.Next() {
		var s domain.Snapshot
		if err := rows.Scan(&s.ID, &s.Title, &s.Filename, &s.AltText, &s.Folder,
			&s.URL, &s.Path, &s.ContentType, &s.SizeBytes, &s.CreatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

func (r *SnapshotRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM snapshots`).Scan(&n)
	return n, err
}
