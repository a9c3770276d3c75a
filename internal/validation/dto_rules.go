package validation

import (
	"fmt"
	"strings"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/models"
)

const (
	MaxTitleLength       = 100
	MaxAuthorLength      = 100
	MaxDescriptionLength = 500
	MaxNotesLength       = 1000
	MaxISBNLength        = 20
	MinPublishedYear     = 1000
	MaxPublishedYear     = 2100
	MaxBorrowedToLength  = 100
)

func trimmed(s string) string { return strings.TrimSpace(s) }

func oneOfTag[S ~string](values []S) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return "oneof=" + strings.Join(parts, " ")
}

func joined[S ~string](values []S) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

var BookRules = NewRuleSet("book",
	Rule[dtos.BookRequest]{
		Field:   "id",
		When:    onCreate[dtos.BookRequest],
		Check:   func(b dtos.BookRequest) bool { return b.ID == nil },
		Message: "Id must not be provided when creating a book.",
	},
	Rule[dtos.BookRequest]{
		Field:   "title",
		Value:   func(b dtos.BookRequest) any { return trimmed(b.Title) },
		Tag:     "required",
		Message: "Title is required.",
	},
	Rule[dtos.BookRequest]{
		Field:   "title",
		Value:   func(b dtos.BookRequest) any { return b.Title },
		Tag:     fmt.Sprintf("max=%d", MaxTitleLength),
		Message: fmt.Sprintf("Title must not exceed %d characters.", MaxTitleLength),
	},
	Rule[dtos.BookRequest]{
		Field:   "author",
		Value:   func(b dtos.BookRequest) any { return trimmed(b.Author) },
		Tag:     "required",
		Message: "Author is required.",
	},
	Rule[dtos.BookRequest]{
		Field:   "author",
		Value:   func(b dtos.BookRequest) any { return b.Author },
		Tag:     fmt.Sprintf("max=%d", MaxAuthorLength),
		Message: fmt.Sprintf("Author must not exceed %d characters.", MaxAuthorLength),
	},
	Rule[dtos.BookRequest]{
		Field:   "description",
		When:    ifPresent(func(b dtos.BookRequest) *string { return b.Description }),
		Value:   deref(func(b dtos.BookRequest) *string { return b.Description }),
		Tag:     fmt.Sprintf("max=%d", MaxDescriptionLength),
		Message: fmt.Sprintf("Description must not exceed %d characters.", MaxDescriptionLength),
	},
	Rule[dtos.BookRequest]{
		Field:   "notes",
		When:    ifPresent(func(b dtos.BookRequest) *string { return b.Notes }),
		Value:   deref(func(b dtos.BookRequest) *string { return b.Notes }),
		Tag:     fmt.Sprintf("max=%d", MaxNotesLength),
		Message: fmt.Sprintf("Notes must not exceed %d characters.", MaxNotesLength),
	},
	Rule[dtos.BookRequest]{
		Field:   "isbn",
		When:    ifPresent(func(b dtos.BookRequest) *string { return b.ISBN }),
		Value:   deref(func(b dtos.BookRequest) *string { return b.ISBN }),
		Tag:     fmt.Sprintf("max=%d", MaxISBNLength),
		Message: fmt.Sprintf("ISBN must not exceed %d characters.", MaxISBNLength),
	},
	Rule[dtos.BookRequest]{
		Field:   "publishedYear",
		When:    ifPresent(func(b dtos.BookRequest) *int { return b.PublishedYear }),
		Value:   deref(func(b dtos.BookRequest) *int { return b.PublishedYear }),
		Tag:     fmt.Sprintf("gte=%d,lte=%d", MinPublishedYear, MaxPublishedYear),
		Message: fmt.Sprintf("Published year must be between %d and %d.", MinPublishedYear, MaxPublishedYear),
	},
	Rule[dtos.BookRequest]{
		Field:   "pageCount",
		When:    ifPresent(func(b dtos.BookRequest) *int { return b.PageCount }),
		Value:   deref(func(b dtos.BookRequest) *int { return b.PageCount }),
		Tag:     "gt=0",
		Message: "Page count must be greater than 0.",
	},
	Rule[dtos.BookRequest]{
		Field:   "ownershipStatus",
		Value:   func(b dtos.BookRequest) any { return b.OwnershipStatus },
		Tag:     oneOfTag(models.OwnershipStatuses),
		Message: "Ownership status must be one of: " + joined(models.OwnershipStatuses) + ".",
	},
)

var LoanRules = NewRuleSet("loan",
	Rule[dtos.LoanRequest]{
		Field:   "borrowedTo",
		Value:   func(l dtos.LoanRequest) any { return trimmed(l.BorrowedTo) },
		Tag:     "required",
		Message: "Borrowed to is required.",
	},
	Rule[dtos.LoanRequest]{
		Field:   "borrowedTo",
		Value:   func(l dtos.LoanRequest) any { return l.BorrowedTo },
		Tag:     fmt.Sprintf("max=%d", MaxBorrowedToLength),
		Message: fmt.Sprintf("Borrowed to must not exceed %d characters.", MaxBorrowedToLength),
	},
)

var RatingRules = NewRuleSet("rating",
	Rule[dtos.RatingRequest]{
		Field:   "score",
		Value:   func(r dtos.RatingRequest) any { return r.Score },
		Tag:     fmt.Sprintf("gte=%d,lte=%d", models.MinRatingScore, models.MaxRatingScore),
		Message: fmt.Sprintf("Score must be between %d and %d.", models.MinRatingScore, models.MaxRatingScore),
	},
	Rule[dtos.RatingRequest]{
		Field:   "notes",
		When:    ifPresent(func(r dtos.RatingRequest) *string { return r.Notes }),
		Value:   deref(func(r dtos.RatingRequest) *string { return r.Notes }),
		Tag:     fmt.Sprintf("max=%d", MaxNotesLength),
		Message: fmt.Sprintf("Notes must not exceed %d characters.", MaxNotesLength),
	},
)

var ReadingStatusRules = NewRuleSet("readingStatus",
	Rule[dtos.ReadingStatusRequest]{
		Field:   "status",
		Value:   func(s dtos.ReadingStatusRequest) any { return s.Status },
		Tag:     oneOfTag(models.ReadingStatusTypes),
		Message: "Status must be one of: " + joined(models.ReadingStatusTypes) + ".",
	},
)
