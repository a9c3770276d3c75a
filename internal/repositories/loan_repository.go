package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"

	"github.com/ipryshchepa/FTG12-sub001/internal/models"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

// OverdueLoan is an active loan joined with the loaned book's title.
type OverdueLoan struct {
	models.Loan
	BookTitle string
}

type LoanRepository interface {
	Create(ctx context.Context, l *models.Loan) error
	GetActiveByBookID(ctx context.Context, bookID uuid.UUID) (*models.Loan, error)
	ListByBookID(ctx context.Context, bookID uuid.UUID) ([]*models.Loan, error)
	MarkReturned(ctx context.Context, id uuid.UUID, returnedAt time.Time) error
	ListActiveOlderThan(ctx context.Context, cutoff time.Time) ([]*OverdueLoan, error)
}

type loanRepo struct {
	db DB
}

func NewLoanRepository(db DB) LoanRepository {
	return &loanRepo{db: db}
}

// Create relies on the partial unique index loans_one_active_per_book; a
// concurrent second loan surfaces as a unique_violation.
func (r *loanRepo) Create(ctx context.Context, l *models.Loan) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO loans (id, book_id, borrowed_to, loan_date, returned_date)
		VALUES ($1,$2,$3,$4,NULL)
	`, l.ID, l.BookID, l.BorrowedTo, l.LoanDate)
	return errors.Wrap(err, "insert loan")
}

func (r *loanRepo) GetActiveByBookID(ctx context.Context, bookID uuid.UUID) (*models.Loan, error) {
	row := r.db.QueryRow(ctx, baseSelectLoan()+" WHERE book_id=$1 AND returned_date IS NULL", bookID)
	l, err := r.scanLoan(row)
	return l, errors.Wrap(err, "select active loan")
}

func (r *loanRepo) ListByBookID(ctx context.Context, bookID uuid.UUID) ([]*models.Loan, error) {
	rows, err := r.db.Query(ctx, baseSelectLoan()+" WHERE book_id=$1 ORDER BY loan_date DESC", bookID)
	if err != nil {
		return nil, errors.Wrap(err, "list loans")
	}
	defer rows.Close()
	var out []*models.Loan
	for rows.Next() {
		l, err := r.scanLoan(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan loan")
		}
		out = append(out, l)
	}
	return out, errors.Wrap(rows.Err(), "iterate loans")
}

func (r *loanRepo) MarkReturned(ctx context.Context, id uuid.UUID, returnedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE loans SET returned_date=$1 WHERE id=$2 AND returned_date IS NULL`, returnedAt, id)
	if err != nil {
		return errors.Wrap(err, "return loan")
	}
	if tag.RowsAffected() == 0 {
		return errors.WithStack(utils.ErrNoRowsUpdated)
	}
	return nil
}

func (r *loanRepo) ListActiveOlderThan(ctx context.Context, cutoff time.Time) ([]*OverdueLoan, error) {
	rows, err := r.db.Query(ctx, `
		SELECT l.id, l.book_id, l.borrowed_to, l.loan_date, l.returned_date, b.title
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.returned_date IS NULL AND l.loan_date < $1
		ORDER BY l.loan_date
	`, cutoff)
	if err != nil {
		return nil, errors.Wrap(err, "list overdue loans")
	}
	defer rows.Close()
	var out []*OverdueLoan
	for rows.Next() {
		var o OverdueLoan
		var returned pgtype.Timestamptz
		if err := rows.Scan(&o.ID, &o.BookID, &o.BorrowedTo, &o.LoanDate, &returned, &o.BookTitle); err != nil {
			return nil, errors.Wrap(err, "scan overdue loan")
		}
		o.ReturnedDate = timestamptzPtr(returned)
		out = append(out, &o)
	}
	return out, errors.Wrap(rows.Err(), "iterate overdue loans")
}

func baseSelectLoan() string {
	return `
		SELECT id, book_id, borrowed_to, loan_date, returned_date
		FROM loans`
}

func (r *loanRepo) scanLoan(row pgx.Row) (*models.Loan, error) {
	var l models.Loan
	var returned pgtype.Timestamptz
	if err := row.Scan(&l.ID, &l.BookID, &l.BorrowedTo, &l.LoanDate, &returned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	l.ReturnedDate = timestamptzPtr(returned)
	return &l, nil
}

func timestamptzPtr(ts pgtype.Timestamptz) *time.Time {
	if ts.Status != pgtype.Present {
		return nil
	}
	t := ts.Time
	return &t
}
