package controllers

import (
	"net/http"

	"github.com/ipryshchepa/FTG12-sub001/internal/middleware"
	"github.com/ipryshchepa/FTG12-sub001/internal/services"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
	"github.com/ipryshchepa/FTG12-sub001/internal/validation"
)

type ReadingStatusController struct {
	statuses services.ReadingStatusService
	mapper   *middleware.ProblemMapper
}

func NewReadingStatusController(statuses services.ReadingStatusService, mapper *middleware.ProblemMapper) *ReadingStatusController {
	return &ReadingStatusController{statuses: statuses, mapper: mapper}
}

// GET /api/v1/books/{id}/reading-status
func (c *ReadingStatusController) GetReadingStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDFromRoute(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	status, err := c.statuses.GetReadingStatus(r.Context(), id)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, status)
}

// PUT /api/v1/books/{id}/reading-status
func (c *ReadingStatusController) SetReadingStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDFromRoute(r)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	req, err := decodeValid(r, validation.ReadingStatusRules, validation.OpUpdate)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	status, err := c.statuses.SetReadingStatus(r.Context(), id, req)
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, status)
}
