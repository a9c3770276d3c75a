package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/models"
	"github.com/ipryshchepa/FTG12-sub001/internal/repositories"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

type BookService interface {
	CreateBook(ctx context.Context, req dtos.BookRequest) (*dtos.BookResponse, error)
	GetBook(ctx context.Context, id uuid.UUID) (*dtos.BookResponse, error)
	ListBooks(ctx context.Context, q dtos.BookListQuery) (*dtos.PagedResponse[dtos.BookListItem], error)
	UpdateBook(ctx context.Context, id uuid.UUID, req dtos.BookRequest) (*dtos.BookResponse, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

type bookService struct {
	books    repositories.BookRepository
	loans    repositories.LoanRepository
	ratings  repositories.RatingRepository
	statuses repositories.ReadingStatusRepository
}

func NewBookService(
	books repositories.BookRepository,
	loans repositories.LoanRepository,
	ratings repositories.RatingRepository,
	statuses repositories.ReadingStatusRepository,
) BookService {
	return &bookService{books: books, loans: loans, ratings: ratings, statuses: statuses}
}

func (s *bookService) CreateBook(ctx context.Context, req dtos.BookRequest) (*dtos.BookResponse, error) {
	b := &models.Book{ID: uuid.New()}
	req.ApplyTo(b)
	normalizeBook(b)

	if err := s.books.Create(ctx, b); err != nil {
		return nil, err
	}
	utils.Logger.WithField("book_id", b.ID).Info("Book created")

	resp := dtos.NewBookResponse(b)
	return &resp, nil
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*dtos.BookResponse, error) {
	b, err := requireBook(ctx, s.books, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, b)
}

func (s *bookService) ListBooks(ctx context.Context, q dtos.BookListQuery) (*dtos.PagedResponse[dtos.BookListItem], error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = utils.DefaultPageSize
	}
	if q.Page < 1 || q.Page > utils.MaxPage {
		return nil, utils.NewBadRequest("Page must be between 1 and %d.", utils.MaxPage)
	}
	if q.PageSize < 1 || q.PageSize > utils.MaxPageSize {
		return nil, utils.NewBadRequest("Page size must be between 1 and %d.", utils.MaxPageSize)
	}
	if q.SortBy != "" && !repositories.IsSortableBookField(q.SortBy) {
		return nil, utils.NewBadRequest("Cannot sort by '%s'.", q.SortBy)
	}
	q.Search = strings.TrimSpace(q.Search)

	items, total, err := s.books.List(ctx, q)
	if err != nil {
		return nil, err
	}
	resp := dtos.NewPagedResponse(items, q.Page, q.PageSize, total)
	return &resp, nil
}

func (s *bookService) UpdateBook(ctx context.Context, id uuid.UUID, req dtos.BookRequest) (*dtos.BookResponse, error) {
	if req.ID != nil && *req.ID != id {
		return nil, utils.NewBadRequest("Book ID in the body (%s) does not match the route (%s).", *req.ID, id)
	}
	if _, err := requireBook(ctx, s.books, id); err != nil {
		return nil, err
	}
	active, err := s.loans.GetActiveByBookID(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated *models.Book
	err = s.books.UpdateWithRetry(ctx, id, func(b *models.Book) error {
		newStatus := models.OwnershipStatus(req.OwnershipStatus)
		if active != nil && b.OwnershipStatus == models.OwnershipOwn && newStatus != models.OwnershipOwn {
			return utils.NewBusinessRule("Cannot change the ownership status of a book that is on loan to %s.", active.BorrowedTo)
		}
		req.ApplyTo(b)
		normalizeBook(b)
		updated = b
		return nil
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, bookNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	utils.Logger.WithField("book_id", id).Info("Book updated")
	return s.detail(ctx, updated)
}

func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if _, err := requireBook(ctx, s.books, id); err != nil {
		return err
	}
	active, err := s.loans.GetActiveByBookID(ctx, id)
	if err != nil {
		return err
	}
	if active != nil {
		return utils.NewBusinessRule("Cannot delete a book that is on loan to %s. Return it first.", active.BorrowedTo)
	}
	if err := s.books.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNoRowsUpdated) {
			return bookNotFound(id)
		}
		return err
	}
	utils.Logger.WithField("book_id", id).Info("Book deleted")
	return nil
}

func (s *bookService) detail(ctx context.Context, b *models.Book) (*dtos.BookResponse, error) {
	resp := dtos.NewBookResponse(b)

	rating, err := s.ratings.GetByBookID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	status, err := s.statuses.GetByBookID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	loan, err := s.loans.GetActiveByBookID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	resp.Rating = dtos.NewRatingResponse(rating)
	resp.ReadingStatus = dtos.NewReadingStatusResponse(status)
	resp.ActiveLoan = dtos.NewLoanResponse(loan)
	return &resp, nil
}

// normalizeBook trims the required text fields and drops blank optional ones.
func normalizeBook(b *models.Book) {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.Description = blankToNil(b.Description)
	b.Notes = blankToNil(b.Notes)
	b.ISBN = blankToNil(b.ISBN)
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
