package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ipryshchepa/FTG12-sub001/internal/models"
	"github.com/ipryshchepa/FTG12-sub001/internal/repositories"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

// Clock returns the current time; swapped in tests.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// requireBook loads a book or raises NotFound.
func requireBook(ctx context.Context, books repositories.BookRepository, id uuid.UUID) (*models.Book, error) {
	b, err := books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, bookNotFound(id)
	}
	return b, nil
}

func bookNotFound(id uuid.UUID) error {
	return utils.NewNotFound("Book with ID %s was not found.", id)
}
