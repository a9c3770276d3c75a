package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/ipryshchepa/FTG12-sub001/internal/models"
)

type ReadingStatusRequest struct {
	Status string `json:"status"`
}

type ReadingStatusResponse struct {
	BookID    uuid.UUID                `json:"bookId"`
	Status    models.ReadingStatusType `json:"status"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

func NewReadingStatusResponse(s *models.ReadingStatus) *ReadingStatusResponse {
	if s == nil {
		return nil
	}
	return &ReadingStatusResponse{BookID: s.BookID, Status: s.Status, UpdatedAt: s.UpdatedAt}
}
