package controllers

import (
	"net/http"

	"github.com/ipryshchepa/FTG12-sub001/internal/middleware"
	"github.com/ipryshchepa/FTG12-sub001/internal/services"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
	"github.com/ipryshchepa/FTG12-sub001/internal/validation"
)

type LoanController struct {
	loans       services.LoanService
	mapper      *middleware.ProblemMapper
	overdueDays int
}

// NewLoanController takes the default threshold used when GET /loans/overdue
// has no days parameter.
func NewLoanController(loans services.LoanService, mapper *middleware.ProblemMapper, overdueDays int) *LoanController {
	if overdueDays <= 0 {
		overdueDays = utils.DefaultOverdueLoanDays
	}
	return &LoanController{loans: loans, mapper: mapper, overdueDays: overdueDays}
}

// POST /api/v1/books/{id}/loan
func (c *LoanController) LoanBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDFromRoute(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	req, err := decodeValid(r, validation.LoanRules, validation.OpCreate)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	loan, err := c.loans.LoanBook(r.Context(), id, req)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, loan)
}

// PUT /api/v1/books/{id}/loan/return
func (c *LoanController) ReturnBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDFromRoute(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	loan, err := c.loans.ReturnBook(r.Context(), id)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, loan)
}

// GET /api/v1/books/{id}/loans
func (c *LoanController) LoanHistoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDFromRoute(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	history, err := c.loans.LoanHistory(r.Context(), id)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, history)
}

// GET /api/v1/loans/overdue?days=N
func (c *LoanController) OverdueLoansHandler(w http.ResponseWriter, r *http.Request) {
	days := c.overdueDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := intParam(raw, "days")
		if err != nil {
			c.mapper.Respond(w, r, err)
			return
		}
		days = n
	}
	overdue, err := c.loans.OverdueLoans(r.Context(), days)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, overdue)
}
