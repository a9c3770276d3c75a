package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/ipryshchepa/FTG12-sub001/internal/models"
)

type LoanRequest struct {
	BorrowedTo string `json:"borrowedTo"`
}

type LoanResponse struct {
	ID           uuid.UUID  `json:"id"`
	BookID       uuid.UUID  `json:"bookId"`
	BorrowedTo   string     `json:"borrowedTo"`
	LoanDate     time.Time  `json:"loanDate"`
	ReturnedDate *time.Time `json:"returnedDate,omitempty"`
	IsReturned   bool       `json:"isReturned"`
}

func NewLoanResponse(l *models.Loan) *LoanResponse {
	if l == nil {
		return nil
	}
	return &LoanResponse{
		ID:           l.ID,
		BookID:       l.BookID,
		BorrowedTo:   l.BorrowedTo,
		LoanDate:     l.LoanDate,
		ReturnedDate: l.ReturnedDate,
		IsReturned:   !l.IsActive(),
	}
}

// OverdueLoanResponse pairs an active loan with the book title and days out.
type OverdueLoanResponse struct {
	LoanResponse
	BookTitle string `json:"bookTitle"`
	DaysOut   int    `json:"daysOut"`
}
