package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/pkg/errors"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/models"
	"github.com/ipryshchepa/FTG12-sub001/internal/repositories"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type fakeBookRepo struct {
	books     map[uuid.UUID]models.Book
	lastQuery dtos.BookListQuery
	updateErr error
}

func newFakeBookRepo(books ...models.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: map[uuid.UUID]models.Book{}}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(_ context.Context, b *models.Book) error {
	b.RowVersion = 1
	b.CreatedAt = fixedNow
	b.UpdatedAt = fixedNow
	r.books[b.ID] = *b
	return nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBookRepo) List(_ context.Context, q dtos.BookListQuery) ([]dtos.BookListItem, int, error) {
	r.lastQuery = q
	var items []dtos.BookListItem
	for _, b := range r.books {
		items = append(items, dtos.BookListItem{ID: b.ID, Title: b.Title, Author: b.Author, OwnershipStatus: b.OwnershipStatus})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return items, len(items), nil
}

func (r *fakeBookRepo) UpdateIfVersion(_ context.Context, b *models.Book, expected int64) (pgconn.CommandTag, error) {
	cur, ok := r.books[b.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	b.RowVersion = expected + 1
	b.UpdatedAt = fixedNow.Add(time.Hour)
	r.books[b.ID] = *b
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeBookRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Book) error) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	return repositories.WithRetry[*models.Book](ctx, 3, id.String(),
		func(ctx context.Context, id string) (*models.Book, error) {
			return r.GetByID(ctx, uuid.MustParse(id))
		},
		r.UpdateIfVersion,
		mutate,
	)
}

func (r *fakeBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.books[id]; !ok {
		return errors.WithStack(utils.ErrNoRowsUpdated)
	}
	delete(r.books, id)
	return nil
}

type fakeLoanRepo struct {
	loans     []*models.Loan
	titles    map[uuid.UUID]string
	createErr error
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{titles: map[uuid.UUID]string{}}
}

func (r *fakeLoanRepo) Create(_ context.Context, l *models.Loan) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *l
	r.loans = append(r.loans, &cp)
	return nil
}

func (r *fakeLoanRepo) GetActiveByBookID(_ context.Context, bookID uuid.UUID) (*models.Loan, error) {
	for _, l := range r.loans {
		if l.BookID == bookID && l.IsActive() {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLoanRepo) ListByBookID(_ context.Context, bookID uuid.UUID) ([]*models.Loan, error) {
	var out []*models.Loan
	for _, l := range r.loans {
		if l.BookID == bookID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) MarkReturned(_ context.Context, id uuid.UUID, returnedAt time.Time) error {
	for _, l := range r.loans {
		if l.ID == id && l.IsActive() {
			l.ReturnedDate = &returnedAt
			return nil
		}
	}
	return errors.WithStack(utils.ErrNoRowsUpdated)
}

func (r *fakeLoanRepo) ListActiveOlderThan(_ context.Context, cutoff time.Time) ([]*repositories.OverdueLoan, error) {
	var out []*repositories.OverdueLoan
	for _, l := range r.loans {
		if l.IsActive() && l.LoanDate.Before(cutoff) {
			out = append(out, &repositories.OverdueLoan{Loan: *l, BookTitle: r.titles[l.BookID]})
		}
	}
	return out, nil
}

type fakeRatingRepo struct {
	ratings map[uuid.UUID]models.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: map[uuid.UUID]models.Rating{}}
}

func (r *fakeRatingRepo) Upsert(_ context.Context, rt *models.Rating) error {
	rt.RatedAt = fixedNow
	r.ratings[rt.BookID] = *rt
	return nil
}

func (r *fakeRatingRepo) GetByBookID(_ context.Context, bookID uuid.UUID) (*models.Rating, error) {
	rt, ok := r.ratings[bookID]
	if !ok {
		return nil, nil
	}
	return &rt, nil
}

func (r *fakeRatingRepo) Delete(_ context.Context, bookID uuid.UUID) error {
	if _, ok := r.ratings[bookID]; !ok {
		return errors.WithStack(utils.ErrNoRowsUpdated)
	}
	delete(r.ratings, bookID)
	return nil
}

type fakeReadingStatusRepo struct {
	statuses map[uuid.UUID]models.ReadingStatus
}

func newFakeReadingStatusRepo() *fakeReadingStatusRepo {
	return &fakeReadingStatusRepo{statuses: map[uuid.UUID]models.ReadingStatus{}}
}

func (r *fakeReadingStatusRepo) Upsert(_ context.Context, s *models.ReadingStatus) error {
	s.UpdatedAt = fixedNow
	r.statuses[s.BookID] = *s
	return nil
}

func (r *fakeReadingStatusRepo) GetByBookID(_ context.Context, bookID uuid.UUID) (*models.ReadingStatus, error) {
	s, ok := r.statuses[bookID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func ownedBook(title string) models.Book {
	return models.Book{
		Versioned:       models.Versioned{RowVersion: 1},
		ID:              uuid.New(),
		Title:           title,
		Author:          "Ursula K. Le Guin",
		OwnershipStatus: models.OwnershipOwn,
	}
}

func activeLoan(bookID uuid.UUID, to string, at time.Time) *models.Loan {
	return &models.Loan{ID: uuid.New(), BookID: bookID, BorrowedTo: to, LoanDate: at}
}

func faultKind(err error) utils.FaultKind {
	return utils.Classify(err)
}
