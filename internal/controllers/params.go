package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/models"
	"github.com/ipryshchepa/FTG12-sub001/internal/routes"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

func bookIDFromRoute(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)[routes.BookIDParam]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, utils.NewBadRequest("'%s' is not a valid book ID.", raw)
	}
	return id, nil
}

// parseBookListQuery reads paging, search, filters and sort from the query string.
// Range checks are left to the service.
func parseBookListQuery(r *http.Request) (dtos.BookListQuery, error) {
	v := r.URL.Query()
	q := dtos.BookListQuery{
		Search: v.Get("search"),
		SortBy: v.Get("sortBy"),
	}

	var err error
	if q.Page, err = intParam(v.Get("page"), "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = intParam(v.Get("pageSize"), "pageSize"); err != nil {
		return q, err
	}

	switch strings.ToLower(v.Get("sortDir")) {
	case "", "asc":
	case "desc":
		q.SortDesc = true
	default:
		return q, utils.NewBadRequest("sortDir must be 'asc' or 'desc'.")
	}

	if s := v.Get("ownershipStatus"); s != "" {
		st := models.OwnershipStatus(s)
		if !st.Valid() {
			return q, utils.NewBadRequest("'%s' is not a valid ownership status.", s)
		}
		q.OwnershipStatus = &st
	}
	if s := v.Get("readingStatus"); s != "" {
		rs := models.ReadingStatusType(s)
		if !rs.Valid() {
			return q, utils.NewBadRequest("'%s' is not a valid reading status.", s)
		}
		q.ReadingStatus = &rs
	}
	return q, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.NewBadRequest("%s must be a whole number.", name)
	}
	return n, nil
}
