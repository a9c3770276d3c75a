package models

import (
	"time"

	"github.com/google/uuid"
)

// Loan records a book lent to someone. ReturnedDate is nil while the book is out.
type Loan struct {
	ID           uuid.UUID  `json:"id"`
	BookID       uuid.UUID  `json:"bookId"`
	BorrowedTo   string     `json:"borrowedTo"`
	LoanDate     time.Time  `json:"loanDate"`
	ReturnedDate *time.Time `json:"returnedDate,omitempty"`
}

func (l *Loan) IsActive() bool { return l.ReturnedDate == nil }

// DaysOut counts whole days between the loan date and now (or the return date).
func (l *Loan) DaysOut(now time.Time) int {
	end := now
	if l.ReturnedDate != nil {
		end = *l.ReturnedDate
	}
	return int(end.Sub(l.LoanDate).Hours() / 24)
}
