package services

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

const healthPingTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService interface {
	Ping(ctx context.Context) (*dtos.HealthCheckResponse, error)
}

type healthService struct {
	db Pinger
}

func NewHealthService(db Pinger) HealthService {
	return &healthService{db: db}
}

func (s *healthService) Ping(ctx context.Context) (*dtos.HealthCheckResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	if err := s.db.Ping(ctx); err != nil {
		return nil, utils.NewUnavailable(errors.Wrap(err, "ping database"))
	}
	return &dtos.HealthCheckResponse{Status: "OK"}, nil
}
