package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgconn"

	"github.com/ipryshchepa/FTG12-sub001/internal/validation"
)

var (
	// ErrRowVersionConflict means an optimistic-lock update kept losing the race.
	ErrRowVersionConflict = errors.New("row_version_conflict")

	ErrNoRowsUpdated = errors.New("no_rows_updated")
)

// FaultKind is the classification bucket of a request failure.
type FaultKind int

const (
	FaultUnclassified FaultKind = iota
	FaultNotFound
	FaultBadRequest
	FaultBusinessRule
	FaultValidation
	FaultPersistence
	FaultUnavailable
)

func (k FaultKind) String() string {
	switch k {
	case FaultNotFound:
		return "not_found"
	case FaultBadRequest:
		return "bad_request"
	case FaultBusinessRule:
		return "business_rule"
	case FaultValidation:
		return "validation"
	case FaultPersistence:
		return "persistence"
	case FaultUnavailable:
		return "unavailable"
	default:
		return "unclassified"
	}
}

// Fault is the error type services and controllers raise for expected failures.
// Message is safe to show a client; Err is for logs only.
type Fault struct {
	Kind       FaultKind
	Message    string
	Violations validation.ViolationSet
	Err        error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Fault) Unwrap() error { return f.Err }

func NewNotFound(format string, args ...any) *Fault {
	return &Fault{Kind: FaultNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewBadRequest(format string, args ...any) *Fault {
	return &Fault{Kind: FaultBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NewBusinessRule(format string, args ...any) *Fault {
	return &Fault{Kind: FaultBusinessRule, Message: fmt.Sprintf(format, args...)}
}

func NewValidationFault(vs validation.ViolationSet) *Fault {
	return &Fault{Kind: FaultValidation, Message: "validation failed", Violations: vs}
}

func NewPersistenceFault(err error) *Fault {
	return &Fault{Kind: FaultPersistence, Message: "persistence conflict", Err: err}
}

// NewUnavailable marks a failed dependency, such as an unreachable database.
func NewUnavailable(err error) *Fault {
	return &Fault{Kind: FaultUnavailable, Message: "dependency unavailable", Err: err}
}

// pgIntegrityClass is SQLSTATE class 23, integrity constraint violation.
const pgIntegrityClass = "23"

// IsUniqueViolation reports whether err carries a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Classify picks the fault kind for any error.
func Classify(err error) FaultKind {
	if err == nil {
		return FaultUnclassified
	}
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == pgIntegrityClass {
		return FaultPersistence
	}
	if errors.Is(err, ErrRowVersionConflict) {
		return FaultPersistence
	}
	return FaultUnclassified
}

const (
	TitleNotFound      = "Not Found"
	TitleBadRequest    = "Bad Request"
	TitleBusinessRule  = "Business Rule Violation"
	TitleValidation    = "Validation Error"
	TitlePersistence   = "Database Update Error"
	TitleInternalError = "Internal Server Error"
	TitleUnavailable   = "Service Unavailable"
)

// StatusAndTitle maps every fault kind to its HTTP status and problem title.
func StatusAndTitle(kind FaultKind) (int, string) {
	switch kind {
	case FaultNotFound:
		return http.StatusNotFound, TitleNotFound
	case FaultBadRequest:
		return http.StatusBadRequest, TitleBadRequest
	case FaultBusinessRule:
		return http.StatusConflict, TitleBusinessRule
	case FaultValidation:
		return http.StatusBadRequest, TitleValidation
	case FaultPersistence:
		return http.StatusConflict, TitlePersistence
	case FaultUnavailable:
		return http.StatusServiceUnavailable, TitleUnavailable
	case FaultUnclassified:
		return http.StatusInternalServerError, TitleInternalError
	default:
		return http.StatusInternalServerError, TitleInternalError
	}
}
