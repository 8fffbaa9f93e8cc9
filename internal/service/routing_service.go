package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/proj-int-univesp/lai-cmg/internal/dto"
	"github.com/proj-int-univesp/lai-cmg/internal/model"
	"github.com/proj-int-univesp/lai-cmg/internal/repository"
)

// RoutingService manages the single routing configuration that binds
// lifecycle responsibilities to organizational units.
type RoutingService interface {
	Get(ctx context.Context) (*dto.RoutingConfigResponse, error)
	Update(ctx context.Context, req *dto.UpdateRoutingConfigRequest) (*dto.RoutingConfigResponse, error)
}

type routingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoutingService creates a RoutingService instance.
func NewRoutingService(repo *repository.Repository, logger *zap.Logger) RoutingService {
	return &routingService{repo: repo, logger: logger}
}

func (s *routingService) Get(ctx context.Context) (*dto.RoutingConfigResponse, error) {
	cfg, err := s.repo.RoutingConfig.Get(ctx)
	if err != nil {
		s.logger.Error("loading routing configuration failed", zap.Error(err))
		return nil, err
	}
	return s.toResponse(ctx, cfg)
}

// Update replaces the responsibility assignments. Every referenced unit is
// validated first; a null field clears its assignment.
func (s *routingService) Update(ctx context.Context, req *dto.UpdateRoutingConfigRequest) (*dto.RoutingConfigResponse, error) {
	assignments := []*string{
		req.IntakeUnitID,
		req.OpinionUnitID,
		req.ResponseUnitID,
		req.FirstAppealUnitID,
		req.SecondAppealUnitID,
	}
	for _, unitID := range assignments {
		if unitID == nil {
			continue
		}
		if _, err := s.repo.Unit.GetByID(ctx, *unitID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnitNotFound
			}
			return nil, err
		}
	}

	cfg, err := s.repo.RoutingConfig.Get(ctx)
	if err != nil {
		return nil, err
	}
	cfg.IntakeUnitID = req.IntakeUnitID
	cfg.OpinionUnitID = req.OpinionUnitID
	cfg.ResponseUnitID = req.ResponseUnitID
	cfg.FirstAppealUnitID = req.FirstAppealUnitID
	cfg.SecondAppealUnitID = req.SecondAppealUnitID

	if err := s.repo.RoutingConfig.Update(ctx, cfg); err != nil {
		s.logger.Error("routing configuration update failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("routing configuration updated")
	return s.toResponse(ctx, cfg)
}

func (s *routingService) toResponse(ctx context.Context, cfg *model.RoutingConfig) (*dto.RoutingConfigResponse, error) {
	resp := &dto.RoutingConfigResponse{
		UpdatedAt: cfg.UpdatedAt.Format(time.RFC3339),
	}

	resolve := func(unitID *string) *dto.UnitResponse {
		if unitID == nil {
			return nil
		}
		unit, err := s.repo.Unit.GetByID(ctx, *unitID)
		if err != nil {
			s.logger.Warn("resolving routing unit failed", zap.String("unit_id", *unitID), zap.Error(err))
			return nil
		}
		return toUnitResponse(unit)
	}

	resp.Intake = resolve(cfg.IntakeUnitID)
	resp.Opinion = resolve(cfg.OpinionUnitID)
	resp.Response = resolve(cfg.ResponseUnitID)
	resp.FirstAppeal = resolve(cfg.FirstAppealUnitID)
	resp.SecondAppeal = resolve(cfg.SecondAppealUnitID)

	return resp, nil
}
