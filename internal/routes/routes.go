package routes

const (
	Health = "/health"

	Books    = "/api/v1/books"
	Book     = "/api/v1/books/{id}"
	BookLoan = "/api/v1/books/{id}/loan"

	BookLoanReturn    = "/api/v1/books/{id}/loan/return"
	BookLoans         = "/api/v1/books/{id}/loans"
	OverdueLoans      = "/api/v1/loans/overdue"
	BookRating        = "/api/v1/books/{id}/rating"
	BookReadingStatus = "/api/v1/books/{id}/reading-status"
)

// BookIDParam is the mux variable carrying the book id.
const BookIDParam = "id"
