package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"

	"github.com/ipryshchepa/FTG12-sub001/internal/models"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

type RatingRepository interface {
	Upsert(ctx context.Context, r *models.Rating) error
	GetByBookID(ctx context.Context, bookID uuid.UUID) (*models.Rating, error)
	Delete(ctx context.Context, bookID uuid.UUID) error
}

type ratingRepo struct {
	db DB
}

func NewRatingRepository(db DB) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Upsert(ctx context.Context, rt *models.Rating) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO ratings (book_id, score, notes, rated_at)
		VALUES ($1,$2,$3,NOW())
		ON CONFLICT (book_id) DO UPDATE SET score=EXCLUDED.score, notes=EXCLUDED.notes, rated_at=NOW()
		RETURNING rated_at
	`, rt.BookID, rt.Score, rt.Notes)
	return errors.Wrap(row.Scan(&rt.RatedAt), "upsert rating")
}

func (r *ratingRepo) GetByBookID(ctx context.Context, bookID uuid.UUID) (*models.Rating, error) {
	var rt models.Rating
	err := r.db.QueryRow(ctx, `SELECT book_id, score, notes, rated_at FROM ratings WHERE book_id=$1`, bookID).
		Scan(&rt.BookID, &rt.Score, &rt.Notes, &rt.RatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select rating")
	}
	return &rt, nil
}

func (r *ratingRepo) Delete(ctx context.Context, bookID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ratings WHERE book_id=$1`, bookID)
	if err != nil {
		return errors.Wrap(err, "delete rating")
	}
	if tag.RowsAffected() == 0 {
		return errors.WithStack(utils.ErrNoRowsUpdated)
	}
	return nil
}
