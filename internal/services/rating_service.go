package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/models"
	"github.com/ipryshchepa/FTG12-sub001/internal/repositories"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

type RatingService interface {
	RateBook(ctx context.Context, bookID uuid.UUID, req dtos.RatingRequest) (*dtos.RatingResponse, error)
	GetRating(ctx context.Context, bookID uuid.UUID) (*dtos.RatingResponse, error)
	DeleteRating(ctx context.Context, bookID uuid.UUID) error
}

type ratingService struct {
	books   repositories.BookRepository
	ratings repositories.RatingRepository
}

func NewRatingService(books repositories.BookRepository, ratings repositories.RatingRepository) RatingService {
	return &ratingService{books: books, ratings: ratings}
}

func (s *ratingService) RateBook(ctx context.Context, bookID uuid.UUID, req dtos.RatingRequest) (*dtos.RatingResponse, error) {
	if _, err := requireBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}
	rt := &models.Rating{BookID: bookID, Score: req.Score, Notes: blankToNil(req.Notes)}
	if err := s.ratings.Upsert(ctx, rt); err != nil {
		return nil, err
	}
	utils.Logger.WithField("book_id", bookID).Info("Book rated")
	return dtos.NewRatingResponse(rt), nil
}

func (s *ratingService) GetRating(ctx context.Context, bookID uuid.UUID) (*dtos.RatingResponse, error) {
	if _, err := requireBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}
	rt, err := s.ratings.GetByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, utils.NewNotFound("Book with ID %s has not been rated.", bookID)
	}
	return dtos.NewRatingResponse(rt), nil
}

func (s *ratingService) DeleteRating(ctx context.Context, bookID uuid.UUID) error {
	if _, err := requireBook(ctx, s.books, bookID); err != nil {
		return err
	}
	err := s.ratings.Delete(ctx, bookID)
	if errors.Is(err, utils.ErrNoRowsUpdated) {
		return utils.NewNotFound("Book with ID %s has not been rated.", bookID)
	}
	return err
}
