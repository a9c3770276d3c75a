package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"

	"github.com/ipryshchepa/FTG12-sub001/internal/models"
)

type ReadingStatusRepository interface {
	Upsert(ctx context.Context, s *models.ReadingStatus) error
	GetByBookID(ctx context.Context, bookID uuid.UUID) (*models.ReadingStatus, error)
}

type readingStatusRepo struct {
	db DB
}

func NewReadingStatusRepository(db DB) ReadingStatusRepository {
	return &readingStatusRepo{db: db}
}

func (r *readingStatusRepo) Upsert(ctx context.Context, s *models.ReadingStatus) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO reading_statuses (book_id, status, updated_at)
		VALUES ($1,$2,NOW())
		ON CONFLICT (book_id) DO UPDATE SET status=EXCLUDED.status, updated_at=NOW()
		RETURNING updated_at
	`, s.BookID, string(s.Status))
	return errors.Wrap(row.Scan(&s.UpdatedAt), "upsert reading status")
}

func (r *readingStatusRepo) GetByBookID(ctx context.Context, bookID uuid.UUID) (*models.ReadingStatus, error) {
	var s models.ReadingStatus
	var status string
	err := r.db.QueryRow(ctx, `SELECT book_id, status, updated_at FROM reading_statuses WHERE book_id=$1`, bookID).
		Scan(&s.BookID, &status, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select reading status")
	}
	s.Status = models.ReadingStatusType(status)
	return &s, nil
}
