package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/ipryshchepa/FTG12-sub001/internal/models"
)

type RatingRequest struct {
	Score int     `json:"score"`
	Notes *string `json:"notes,omitempty"`
}

type RatingResponse struct {
	BookID  uuid.UUID `json:"bookId"`
	Score   int       `json:"score"`
	Notes   *string   `json:"notes,omitempty"`
	RatedAt time.Time `json:"ratedAt"`
}

func NewRatingResponse(r *models.Rating) *RatingResponse {
	if r == nil {
		return nil
	}
	return &RatingResponse{BookID: r.BookID, Score: r.Score, Notes: r.Notes, RatedAt: r.RatedAt}
}
