package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/models"
	"github.com/ipryshchepa/FTG12-sub001/internal/repositories"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

type LoanService interface {
	LoanBook(ctx context.Context, bookID uuid.UUID, req dtos.LoanRequest) (*dtos.LoanResponse, error)
	ReturnBook(ctx context.Context, bookID uuid.UUID) (*dtos.LoanResponse, error)
	LoanHistory(ctx context.Context, bookID uuid.UUID) ([]dtos.LoanResponse, error)
	OverdueLoans(ctx context.Context, days int) ([]dtos.OverdueLoanResponse, error)
	SweepOverdueLoans(ctx context.Context) (int, error)
}

type loanService struct {
	books       repositories.BookRepository
	loans       repositories.LoanRepository
	overdueDays int
	now         Clock
}

// NewLoanService builds the loan service. overdueDays is the threshold used by
// the scheduled sweep; non-positive values fall back to the default.
func NewLoanService(books repositories.BookRepository, loans repositories.LoanRepository, overdueDays int) LoanService {
	return newLoanService(books, loans, overdueDays, utcNow)
}

func newLoanService(books repositories.BookRepository, loans repositories.LoanRepository, overdueDays int, now Clock) *loanService {
	if overdueDays <= 0 {
		overdueDays = utils.DefaultOverdueLoanDays
	}
	return &loanService{books: books, loans: loans, overdueDays: overdueDays, now: now}
}

func (s *loanService) LoanBook(ctx context.Context, bookID uuid.UUID, req dtos.LoanRequest) (*dtos.LoanResponse, error) {
	book, err := requireBook(ctx, s.books, bookID)
	if err != nil {
		return nil, err
	}
	if book.OwnershipStatus != models.OwnershipOwn {
		return nil, utils.NewBusinessRule("Only books you own can be loaned. '%s' is marked %s.", book.Title, book.OwnershipStatus)
	}

	active, err := s.loans.GetActiveByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, utils.NewBusinessRule("'%s' is already on loan to %s.", book.Title, active.BorrowedTo)
	}

	loan := &models.Loan{
		ID:         uuid.New(),
		BookID:     bookID,
		BorrowedTo: strings.TrimSpace(req.BorrowedTo),
		LoanDate:   s.now(),
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, err
	}

	utils.Logger.WithFields(logrus.Fields{
		"book_id": bookID,
		"loan_id": loan.ID,
	}).Info("Book loaned")
	return dtos.NewLoanResponse(loan), nil
}

func (s *loanService) ReturnBook(ctx context.Context, bookID uuid.UUID) (*dtos.LoanResponse, error) {
	book, err := requireBook(ctx, s.books, bookID)
	if err != nil {
		return nil, err
	}
	active, err := s.loans.GetActiveByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, notOnLoan(book)
	}

	returnedAt := s.now()
	if err := s.loans.MarkReturned(ctx, active.ID, returnedAt); err != nil {
		if errors.Is(err, utils.ErrNoRowsUpdated) {
			return nil, notOnLoan(book)
		}
		return nil, err
	}
	active.ReturnedDate = &returnedAt

	utils.Logger.WithFields(logrus.Fields{
		"book_id": bookID,
		"loan_id": active.ID,
	}).Info("Book returned")
	return dtos.NewLoanResponse(active), nil
}

func (s *loanService) LoanHistory(ctx context.Context, bookID uuid.UUID) ([]dtos.LoanResponse, error) {
	if _, err := requireBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}
	loans, err := s.loans.ListByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	out := make([]dtos.LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, *dtos.NewLoanResponse(l))
	}
	return out, nil
}

func (s *loanService) OverdueLoans(ctx context.Context, days int) ([]dtos.OverdueLoanResponse, error) {
	if days < 1 {
		return nil, utils.NewBadRequest("Days must be 1 or greater.")
	}
	now := s.now()
	loans, err := s.loans.ListActiveOlderThan(ctx, now.Add(-time.Duration(days)*24*time.Hour))
	if err != nil {
		return nil, err
	}
	out := make([]dtos.OverdueLoanResponse, 0, len(loans))
	for _, o := range loans {
		out = append(out, dtos.OverdueLoanResponse{
			LoanResponse: *dtos.NewLoanResponse(&o.Loan),
			BookTitle:    o.BookTitle,
			DaysOut:      o.DaysOut(now),
		})
	}
	return out, nil
}

// SweepOverdueLoans logs every loan past the configured threshold and returns
// how many were found. Run from the scheduler.
func (s *loanService) SweepOverdueLoans(ctx context.Context) (int, error) {
	overdue, err := s.OverdueLoans(ctx, s.overdueDays)
	if err != nil {
		return 0, err
	}
	for _, o := range overdue {
		utils.Logger.WithFields(logrus.Fields{
			"book_id":     o.BookID,
			"book_title":  o.BookTitle,
			"borrowed_to": o.BorrowedTo,
			"days_out":    o.DaysOut,
		}).Warn("Loan overdue")
	}
	utils.Logger.WithField("count", len(overdue)).Info("Overdue loan sweep finished")
	return len(overdue), nil
}

func notOnLoan(b *models.Book) error {
	return utils.NewBusinessRule("'%s' is not currently on loan.", b.Title)
}
