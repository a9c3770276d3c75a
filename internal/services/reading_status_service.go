package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/models"
	"github.com/ipryshchepa/FTG12-sub001/internal/repositories"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

type ReadingStatusService interface {
	SetReadingStatus(ctx context.Context, bookID uuid.UUID, req dtos.ReadingStatusRequest) (*dtos.ReadingStatusResponse, error)
	GetReadingStatus(ctx context.Context, bookID uuid.UUID) (*dtos.ReadingStatusResponse, error)
}

type readingStatusService struct {
	books    repositories.BookRepository
	statuses repositories.ReadingStatusRepository
}

func NewReadingStatusService(books repositories.BookRepository, statuses repositories.ReadingStatusRepository) ReadingStatusService {
	return &readingStatusService{books: books, statuses: statuses}
}

func (s *readingStatusService) SetReadingStatus(ctx context.Context, bookID uuid.UUID, req dtos.ReadingStatusRequest) (*dtos.ReadingStatusResponse, error) {
	if _, err := requireBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}
	rs := &models.ReadingStatus{BookID: bookID, Status: models.ReadingStatusType(req.Status)}
	if err := s.statuses.Upsert(ctx, rs); err != nil {
		return nil, err
	}
	utils.Logger.WithFields(logrus.Fields{
		"book_id": bookID,
		"status":  rs.Status,
	}).Info("Reading status set")
	return dtos.NewReadingStatusResponse(rs), nil
}

func (s *readingStatusService) GetReadingStatus(ctx context.Context, bookID uuid.UUID) (*dtos.ReadingStatusResponse, error) {
	if _, err := requireBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}
	rs, err := s.statuses.GetByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		return nil, utils.NewNotFound("Book with ID %s has no reading status.", bookID)
	}
	return dtos.NewReadingStatusResponse(rs), nil
}
