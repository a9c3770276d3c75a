package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRatingScore = 1
	MaxRatingScore = 10
)

// Rating is the single score given to a book.
type Rating struct {
	BookID  uuid.UUID `json:"bookId"`
	Score   int       `json:"score"`
	Notes   *string   `json:"notes,omitempty"`
	RatedAt time.Time `json:"ratedAt"`
}
