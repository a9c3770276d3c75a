package controllers

import (
	"net/http"

	"github.com/ipryshchepa/FTG12-sub001/internal/middleware"
	"github.com/ipryshchepa/FTG12-sub001/internal/services"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

type HealthController struct {
	health services.HealthService
	mapper *middleware.ProblemMapper
}

func NewHealthController(health services.HealthService, mapper *middleware.ProblemMapper) *HealthController {
	return &HealthController{health: health, mapper: mapper}
}

// GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.health.Ping(r.Context())
	if err != nil {
		c.mapper.Respond(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
