package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/ipryshchepa/FTG12-sub001/internal/models"
)

// BookRequest is the body of POST /books and PUT /books/{id}.
// OwnershipStatus stays a plain string so unknown values reach the validator.
type BookRequest struct {
	ID              *uuid.UUID `json:"id,omitempty"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Description     *string    `json:"description,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	ISBN            *string    `json:"isbn,omitempty"`
	PublishedYear   *int       `json:"publishedYear,omitempty"`
	PageCount       *int       `json:"pageCount,omitempty"`
	OwnershipStatus string     `json:"ownershipStatus"`
}

// ApplyTo copies the request onto a book, leaving identity and timestamps untouched.
func (r BookRequest) ApplyTo(b *models.Book) {
	b.Title = r.Title
	b.Author = r.Author
	b.Description = r.Description
	b.Notes = r.Notes
	b.ISBN = r.ISBN
	b.PublishedYear = r.PublishedYear
	b.PageCount = r.PageCount
	b.OwnershipStatus = models.OwnershipStatus(r.OwnershipStatus)
}

// BookResponse is the detail view of a book with everything attached to it.
type BookResponse struct {
	ID              uuid.UUID              `json:"id"`
	Title           string                 `json:"title"`
	Author          string                 `json:"author"`
	Description     *string                `json:"description,omitempty"`
	Notes           *string                `json:"notes,omitempty"`
	ISBN            *string                `json:"isbn,omitempty"`
	PublishedYear   *int                   `json:"publishedYear,omitempty"`
	PageCount       *int                   `json:"pageCount,omitempty"`
	OwnershipStatus models.OwnershipStatus `json:"ownershipStatus"`
	RowVersion      int64                  `json:"rowVersion"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
	Rating          *RatingResponse        `json:"rating,omitempty"`
	ReadingStatus   *ReadingStatusResponse `json:"readingStatus,omitempty"`
	ActiveLoan      *LoanResponse          `json:"activeLoan,omitempty"`
}

func NewBookResponse(b *models.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Description:     b.Description,
		Notes:           b.Notes,
		ISBN:            b.ISBN,
		PublishedYear:   b.PublishedYear,
		PageCount:       b.PageCount,
		OwnershipStatus: b.OwnershipStatus,
		RowVersion:      b.RowVersion,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// BookListItem is one row of the paged book grid.
type BookListItem struct {
	ID              uuid.UUID                 `json:"id"`
	Title           string                    `json:"title"`
	Author          string                    `json:"author"`
	OwnershipStatus models.OwnershipStatus    `json:"ownershipStatus"`
	Score           *int                      `json:"score,omitempty"`
	ReadingStatus   *models.ReadingStatusType `json:"readingStatus,omitempty"`
	BorrowedTo      *string                   `json:"borrowedTo,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
}

// BookListQuery carries the parsed query string of GET /books.
type BookListQuery struct {
	Page            int
	PageSize        int
	Search          string
	OwnershipStatus *models.OwnershipStatus
	ReadingStatus   *models.ReadingStatusType
	SortBy          string
	SortDesc        bool
}

type PagedResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

func NewPagedResponse[T any](items []T, page, pageSize, total int) PagedResponse[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return PagedResponse[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: pages,
	}
}
