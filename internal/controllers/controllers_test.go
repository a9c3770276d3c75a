package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgconn"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/middleware"
	"github.com/ipryshchepa/FTG12-sub001/internal/routes"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type harness struct {
	router   *mux.Router
	books    *fakeBookService
	loans    *fakeLoanService
	ratings  *fakeRatingService
	statuses *fakeReadingStatusService
	health   *fakeHealthService
	hook     *test.Hook
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger, hook := test.NewNullLogger()
	mapper := middleware.NewProblemMapper(false, logger)

	h := &harness{
		books:    &fakeBookService{},
		loans:    &fakeLoanService{},
		ratings:  &fakeRatingService{},
		statuses: &fakeReadingStatusService{},
		health:   &fakeHealthService{},
		hook:     hook,
	}

	bc := NewBookController(h.books, mapper)
	lc := NewLoanController(h.loans, mapper, 30)
	rc := NewRatingController(h.ratings, mapper)
	sc := NewReadingStatusController(h.statuses, mapper)
	hc := NewHealthController(h.health, mapper)

	r := mux.NewRouter()
	r.NotFoundHandler = mapper.NotFoundHandler()
	r.Use(mapper.Recoverer())
	r.HandleFunc(routes.Health, hc.HealthCheckHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.Books, bc.ListBooksHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.Books, bc.CreateBookHandler).Methods(http.MethodPost)
	r.HandleFunc(routes.Book, bc.GetBookHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.Book, bc.UpdateBookHandler).Methods(http.MethodPut)
	r.HandleFunc(routes.Book, bc.DeleteBookHandler).Methods(http.MethodDelete)
	r.HandleFunc(routes.BookLoan, lc.LoanBookHandler).Methods(http.MethodPost)
	r.HandleFunc(routes.BookLoanReturn, lc.ReturnBookHandler).Methods(http.MethodPut)
	r.HandleFunc(routes.OverdueLoans, lc.OverdueLoansHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.BookRating, rc.RateBookHandler).Methods(http.MethodPut)
	r.HandleFunc(routes.BookRating, rc.DeleteRatingHandler).Methods(http.MethodDelete)
	r.HandleFunc(routes.BookReadingStatus, sc.SetReadingStatusHandler).Methods(http.MethodPut)
	h.router = r
	return h
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) dtos.ProblemResponse {
	t.Helper()
	assert.Equal(t, utils.ContentTypeProblem, rec.Header().Get("Content-Type"))
	var p dtos.ProblemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestCreateBook_EmptyTitle(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, routes.Books, `{"title":"","author":"Le Guin","ownershipStatus":"Own"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "Validation Error", p.Title)
	assert.Equal(t, middleware.DetailValidation, p.Detail)
	assert.Equal(t, routes.Books, p.Instance)
	require.Len(t, p.Errors, 1)
	assert.Equal(t, []string{"Title is required."}, p.Errors["title"])
	assert.Nil(t, h.books.created, "service is not called when validation fails")
}

func TestCreateBook_IDOnCreate(t *testing.T) {
	h := newHarness(t)

	body := `{"id":"` + uuid.NewString() + `","title":"T","author":"A","ownershipStatus":"Own"}`
	rec := h.do(http.MethodPost, routes.Books, body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Contains(t, p.Errors, "id")
}

func TestCreateBook_Created(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, routes.Books, `{"title":"Tehanu","author":"Le Guin","ownershipStatus":"WantToBuy"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, utils.ContentTypeJSON, rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), routes.Books+"/"))
	var resp dtos.BookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Tehanu", resp.Title)
}

func TestCreateBook_MalformedJSON(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, routes.Books, `{"title":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bad Request", decodeProblem(t, rec).Title)
}

func TestGetBook_InvalidID(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/v1/books/not-a-uuid", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeProblem(t, rec).Detail, "not-a-uuid")
}

func TestGetBook_NotFound(t *testing.T) {
	h := newHarness(t)
	h.books.err = utils.NewNotFound("Book with ID x was not found.")

	rec := h.do(http.MethodGet, "/api/v1/books/"+uuid.NewString(), "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "Not Found", p.Title)
	assert.Equal(t, "Book with ID x was not found.", p.Detail)
}

func TestGetBook_PanicBecomesProblem(t *testing.T) {
	h := newHarness(t)
	h.books.panicMsg = "nil map write"

	rec := h.do(http.MethodGet, "/api/v1/books/"+uuid.NewString(), "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, middleware.DetailInternal, p.Detail, "production mode hides panic text")
}

func TestGetBook_UnexpectedErrorHidden(t *testing.T) {
	h := newHarness(t)
	h.books.err = errors.New("dial tcp 10.0.0.5:5432: connection refused")

	rec := h.do(http.MethodGet, "/api/v1/books/"+uuid.NewString(), "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	p := decodeProblem(t, rec)
	assert.NotContains(t, p.Detail, "10.0.0.5")
	require.Len(t, h.hook.AllEntries(), 1, "exactly one log entry per failure")
}

func TestUpdateBook_BusinessRule(t *testing.T) {
	h := newHarness(t)
	h.books.err = utils.NewBusinessRule("Cannot change the ownership status of a book that is on loan to Kim.")

	rec := h.do(http.MethodPut, "/api/v1/books/"+uuid.NewString(), `{"title":"T","author":"A","ownershipStatus":"SoldOrGaveAway"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Business Rule Violation", decodeProblem(t, rec).Title)
}

func TestUpdateBook_AllowsIDOnUpdate(t *testing.T) {
	h := newHarness(t)
	id := uuid.NewString()

	rec := h.do(http.MethodPut, "/api/v1/books/"+id, `{"id":"`+id+`","title":"T","author":"A","ownershipStatus":"Own"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteBook_NoContent(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodDelete, "/api/v1/books/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestListBooks_ParsesQuery(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, routes.Books+"?page=2&pageSize=20&search=earth&ownershipStatus=Own&readingStatus=Completed&sortBy=author&sortDir=desc", "")

	require.Equal(t, http.StatusOK, rec.Code)
	q := h.books.lastQuery
	require.NotNil(t, q)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 20, q.PageSize)
	assert.Equal(t, "earth", q.Search)
	assert.Equal(t, "author", q.SortBy)
	assert.True(t, q.SortDesc)
	require.NotNil(t, q.OwnershipStatus)
	require.NotNil(t, q.ReadingStatus)
}

func TestListBooks_BadQuery(t *testing.T) {
	h := newHarness(t)
	for _, qs := range []string{"?page=abc", "?sortDir=sideways", "?ownershipStatus=Borrowed", "?readingStatus=Skimmed"} {
		rec := h.do(http.MethodGet, routes.Books+qs, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, qs)
	}
	assert.Nil(t, h.books.lastQuery)
}

func TestLoanBook_ConcurrentLoanIsDatabaseUpdateError(t *testing.T) {
	h := newHarness(t)
	h.loans.err = &pgconn.PgError{Code: "23505", ConstraintName: "loans_one_active_per_book", Detail: "Key (book_id)=(...) already exists."}

	rec := h.do(http.MethodPost, "/api/v1/books/"+uuid.NewString()+"/loan", `{"borrowedTo":"Alex"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "Database Update Error", p.Title)
	assert.Equal(t, middleware.DetailPersistence, p.Detail)
	assert.NotContains(t, p.Detail, "loans_one_active_per_book")
}

func TestLoanBook_Created(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPost, "/api/v1/books/"+uuid.NewString()+"/loan", `{"borrowedTo":"Alex"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestLoanBook_BlankBorrower(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPost, "/api/v1/books/"+uuid.NewString()+"/loan", `{"borrowedTo":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeProblem(t, rec).Errors, "borrowedTo")
}

func TestReturnBook_NoActiveLoan(t *testing.T) {
	h := newHarness(t)
	h.loans.err = utils.NewBusinessRule("'T' is not currently on loan.")
	rec := h.do(http.MethodPut, "/api/v1/books/"+uuid.NewString()+"/loan/return", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOverdueLoans_Days(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, routes.OverdueLoans, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, h.loans.lastDays)

	rec = h.do(http.MethodGet, routes.OverdueLoans+"?days=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, h.loans.lastDays)

	rec = h.do(http.MethodGet, routes.OverdueLoans+"?days=week", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateBook_ScoreOutOfRange(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPut, "/api/v1/books/"+uuid.NewString()+"/rating", `{"score":11}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Score must be between 1 and 10."}, decodeProblem(t, rec).Errors["score"])
}

func TestDeleteRating_NotFound(t *testing.T) {
	h := newHarness(t)
	h.ratings.err = utils.NewNotFound("Book has not been rated.")
	rec := h.do(http.MethodDelete, "/api/v1/books/"+uuid.NewString()+"/rating", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetReadingStatus_InvalidStatus(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPut, "/api/v1/books/"+uuid.NewString()+"/reading-status", `{"status":"Reading"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeProblem(t, rec).Errors, "status")
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, routes.Health, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	h.health.err = utils.NewUnavailable(errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	rec = h.do(http.MethodGet, routes.Health, "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "Service Unavailable", p.Title)
	assert.Equal(t, middleware.DetailUnavailable, p.Detail)
	require.Len(t, h.hook.AllEntries(), 1, "exactly one log entry per failure")
}

func TestUnknownRoute(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/api/v1/shelves", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/api/v1/shelves", decodeProblem(t, rec).Instance)
}
