package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
)

type fakeBookService struct {
	created   *dtos.BookRequest
	lastQuery *dtos.BookListQuery
	err       error
	panicMsg  string
}

func (f *fakeBookService) CreateBook(_ context.Context, req dtos.BookRequest) (*dtos.BookResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &req
	return &dtos.BookResponse{ID: uuid.New(), Title: req.Title, Author: req.Author}, nil
}

func (f *fakeBookService) GetBook(_ context.Context, id uuid.UUID) (*dtos.BookResponse, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &dtos.BookResponse{ID: id, Title: "Found"}, nil
}

func (f *fakeBookService) ListBooks(_ context.Context, q dtos.BookListQuery) (*dtos.PagedResponse[dtos.BookListItem], error) {
	f.lastQuery = &q
	if f.err != nil {
		return nil, f.err
	}
	resp := dtos.NewPagedResponse[dtos.BookListItem](nil, 1, 10, 0)
	return &resp, nil
}

func (f *fakeBookService) UpdateBook(_ context.Context, id uuid.UUID, req dtos.BookRequest) (*dtos.BookResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dtos.BookResponse{ID: id, Title: req.Title}, nil
}

func (f *fakeBookService) DeleteBook(_ context.Context, _ uuid.UUID) error {
	return f.err
}

type fakeLoanService struct {
	err      error
	lastDays int
}

func (f *fakeLoanService) LoanBook(_ context.Context, bookID uuid.UUID, req dtos.LoanRequest) (*dtos.LoanResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dtos.LoanResponse{ID: uuid.New(), BookID: bookID, BorrowedTo: req.BorrowedTo}, nil
}

func (f *fakeLoanService) ReturnBook(_ context.Context, bookID uuid.UUID) (*dtos.LoanResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dtos.LoanResponse{BookID: bookID, IsReturned: true}, nil
}

func (f *fakeLoanService) LoanHistory(_ context.Context, _ uuid.UUID) ([]dtos.LoanResponse, error) {
	return []dtos.LoanResponse{}, f.err
}

func (f *fakeLoanService) OverdueLoans(_ context.Context, days int) ([]dtos.OverdueLoanResponse, error) {
	f.lastDays = days
	return []dtos.OverdueLoanResponse{}, f.err
}

func (f *fakeLoanService) SweepOverdueLoans(_ context.Context) (int, error) {
	return 0, f.err
}

type fakeRatingService struct {
	err error
}

func (f *fakeRatingService) RateBook(_ context.Context, bookID uuid.UUID, req dtos.RatingRequest) (*dtos.RatingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dtos.RatingResponse{BookID: bookID, Score: req.Score}, nil
}

func (f *fakeRatingService) GetRating(_ context.Context, bookID uuid.UUID) (*dtos.RatingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dtos.RatingResponse{BookID: bookID, Score: 5}, nil
}

func (f *fakeRatingService) DeleteRating(_ context.Context, _ uuid.UUID) error {
	return f.err
}

type fakeReadingStatusService struct {
	err error
}

func (f *fakeReadingStatusService) SetReadingStatus(_ context.Context, bookID uuid.UUID, req dtos.ReadingStatusRequest) (*dtos.ReadingStatusResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dtos.ReadingStatusResponse{BookID: bookID}, nil
}

func (f *fakeReadingStatusService) GetReadingStatus(_ context.Context, bookID uuid.UUID) (*dtos.ReadingStatusResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dtos.ReadingStatusResponse{BookID: bookID}, nil
}

type fakeHealthService struct {
	err error
}

func (f *fakeHealthService) Ping(_ context.Context) (*dtos.HealthCheckResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dtos.HealthCheckResponse{Status: "OK"}, nil
}
