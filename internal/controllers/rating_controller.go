package controllers

import (
	"net/http"

	"github.com/ipryshchepa/FTG12-sub001/internal/middleware"
	"github.com/ipryshchepa/FTG12-sub001/internal/services"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
	"github.com/ipryshchepa/FTG12-sub001/internal/validation"
)

type RatingController struct {
	ratings services.RatingService
	mapper  *middleware.ProblemMapper
}

func NewRatingController(ratings services.RatingService, mapper *middleware.ProblemMapper) *RatingController {
	return &RatingController{ratings: ratings, mapper: mapper}
}

// GET /api/v1/books/{id}/rating
func (c *RatingController) GetRatingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDFromRoute(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	rating, err := c.ratings.GetRating(r.Context(), id)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rating)
}

// PUT /api/v1/books/{id}/rating
func (c *RatingController) RateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDFromRoute(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	req, err := decodeValid(r, validation.RatingRules, validation.OpUpdate)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	rating, err := c.ratings.RateBook(r.Context(), id, req)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rating)
}

// DELETE /api/v1/books/{id}/rating
func (c *RatingController) DeleteRatingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDFromRoute(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	if err := c.ratings.DeleteRating(r.Context(), id); err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
