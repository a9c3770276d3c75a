package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ipryshchepa/FTG12-sub001/internal/controllers"
	"github.com/ipryshchepa/FTG12-sub001/internal/middleware"
	"github.com/ipryshchepa/FTG12-sub001/internal/routes"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

// Controllers groups every HTTP handler set the router mounts.
type Controllers struct {
	Health        *controllers.HealthController
	Books         *controllers.BookController
	Loans         *controllers.LoanController
	Ratings       *controllers.RatingController
	ReadingStatus *controllers.ReadingStatusController
}

// NewRouter wires every route. The recoverer runs outermost so a panic in any
// handler or in the request logger is still mapped to a problem response.
func NewRouter(c Controllers, mapper *middleware.ProblemMapper) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = mapper.NotFoundHandler()
	router.Use(mapper.Recoverer(), middleware.RequestLogger(utils.Logger))

	router.HandleFunc(routes.Health, c.Health.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Books, c.Books.ListBooksHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Books, c.Books.CreateBookHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Book, c.Books.GetBookHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Book, c.Books.UpdateBookHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.Book, c.Books.DeleteBookHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.BookLoan, c.Loans.LoanBookHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.BookLoanReturn, c.Loans.ReturnBookHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.BookLoans, c.Loans.LoanHistoryHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.OverdueLoans, c.Loans.OverdueLoansHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.BookRating, c.Ratings.GetRatingHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BookRating, c.Ratings.RateBookHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.BookRating, c.Ratings.DeleteRatingHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.BookReadingStatus, c.ReadingStatus.GetReadingStatusHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BookReadingStatus, c.ReadingStatus.SetReadingStatusHandler).Methods(http.MethodPut)

	return router
}
