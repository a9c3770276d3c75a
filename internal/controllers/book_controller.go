package controllers

import (
	"net/http"

	"github.com/ipryshchepa/FTG12-sub001/internal/middleware"
	"github.com/ipryshchepa/FTG12-sub001/internal/services"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
	"github.com/ipryshchepa/FTG12-sub001/internal/validation"
)

type BookController struct {
	books  services.BookService
	mapper *middleware.ProblemMapper
}

func NewBookController(books services.BookService, mapper *middleware.ProblemMapper) *BookController {
	return &BookController{books: books, mapper: mapper}
}

// GET /api/v1/books
func (c *BookController) ListBooksHandler(w http.ResponseWriter, r *http.Request) {
	q, err := parseBookListQuery(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	page, err := c.books.ListBooks(r.Context(), q)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

// POST /api/v1/books
func (c *BookController) CreateBookHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeValid(r, validation.BookRules, validation.OpCreate)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	book, err := c.books.CreateBook(r.Context(), req)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	w.Header().Set("Location", r.URL.Path+"/"+book.ID.String())
	utils.RespondWithJSON(w, http.StatusCreated, book)
}

// GET /api/v1/books/{id}
func (c *BookController) GetBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDFromRoute(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	book, err := c.books.GetBook(r.Context(), id)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, book)
}

// PUT /api/v1/books/{id}
func (c *BookController) UpdateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDFromRoute(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	req, err := decodeValid(r, validation.BookRules, validation.OpUpdate)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	book, err := c.books.UpdateBook(r.Context(), id, req)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, book)
}

// DELETE /api/v1/books/{id}
func (c *BookController) DeleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDFromRoute(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	if err := c.books.DeleteBook(r.Context(), id); err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
