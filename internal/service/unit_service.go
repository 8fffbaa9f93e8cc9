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

// ── unit module business errors ──

var (
	ErrUnitNotFound  = errors.New("organizational unit not found")
	ErrUnitNameTaken = errors.New("a unit with this name already exists")
	ErrUnitHasStaff  = errors.New("unit still has staff members assigned")
)

// UnitService manages organizational units.
type UnitService interface {
	Create(ctx context.Context, req *dto.CreateUnitRequest) (*dto.UnitResponse, error)
	Get(ctx context.Context, id string) (*dto.UnitResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.UnitResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUnitRequest) (*dto.UnitResponse, error)
	Delete(ctx context.Context, id string) error
}

type unitService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUnitService creates a UnitService instance.
func NewUnitService(repo *repository.Repository, logger *zap.Logger) UnitService {
	return &unitService{repo: repo, logger: logger}
}

func (s *unitService) Create(ctx context.Context, req *dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	if _, err := s.repo.Unit.GetByName(ctx, req.Name); err == nil {
		return nil, ErrUnitNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("unit name lookup failed", zap.Error(err))
		return nil, err
	}

	unit := &model.OrgUnit{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
		IsActive:     true,
	}
	if req.Details != "" {
		details := req.Details
		unit.Details = &details
	}

	if err := s.repo.Unit.Create(ctx, unit); err != nil {
		s.logger.Error("unit creation failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("unit created", zap.String("unit_id", unit.UnitID), zap.String("name", unit.Name))
	return s.toResponse(ctx, unit), nil
}

func (s *unitService) Get(ctx context.Context, id string) (*dto.UnitResponse, error) {
	unit, err := s.getUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, unit), nil
}

func (s *unitService) List(ctx context.Context, includeInactive bool) ([]dto.UnitResponse, error) {
	var (
		units []model.OrgUnit
		err   error
	)
	if includeInactive {
		units, err = s.repo.Unit.ListAll(ctx)
	} else {
		units, err = s.repo.Unit.List(ctx)
	}
	if err != nil {
		s.logger.Error("listing units failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UnitResponse, 0, len(units))
	for i := range units {
		result = append(result, *s.toResponse(ctx, &units[i]))
	}
	return result, nil
}

func (s *unitService) Update(ctx context.Context, id string, req *dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	unit, err := s.getUnit(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != unit.Name {
		if existing, err := s.repo.Unit.GetByName(ctx, *req.Name); err == nil && existing.UnitID != id {
			return nil, ErrUnitNameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		unit.Name = *req.Name
	}
	if req.Abbreviation != nil {
		unit.Abbreviation = *req.Abbreviation
	}
	if req.Details != nil {
		if *req.Details == "" {
			unit.Details = nil
		} else {
			unit.Details = req.Details
		}
	}
	if req.IsActive != nil {
		unit.IsActive = *req.IsActive
	}

	if err := s.repo.Unit.Update(ctx, unit); err != nil {
		s.logger.Error("unit update failed", zap.String("unit_id", id), zap.Error(err))
		return nil, err
	}
	return s.toResponse(ctx, unit), nil
}

// Delete removes a unit; refused while staff members are still assigned to
// it, so request history never points at a dangling unit.
func (s *unitService) Delete(ctx context.Context, id string) error {
	unit, err := s.getUnit(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.Unit.CountStaff(ctx, id)
	if err != nil {
		s.logger.Error("counting unit staff failed", zap.String("unit_id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrUnitHasStaff
	}

	if err := s.repo.Unit.Delete(ctx, id); err != nil {
		s.logger.Error("unit deletion failed", zap.String("unit_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("unit deleted", zap.String("unit_id", id), zap.String("name", unit.Name))
	return nil
}

func (s *unitService) getUnit(ctx context.Context, id string) (*model.OrgUnit, error) {
	unit, err := s.repo.Unit.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		s.logger.Error("loading unit failed", zap.String("unit_id", id), zap.Error(err))
		return nil, err
	}
	return unit, nil
}

func (s *unitService) toResponse(ctx context.Context, unit *model.OrgUnit) *dto.UnitResponse {
	resp := toUnitResponse(unit)
	if count, err := s.repo.Unit.CountStaff(ctx, unit.UnitID); err == nil {
		resp.StaffCount = count
	}
	return resp
}

// toUnitResponse maps a unit without the staff count; shared with the
// services that embed unit views.
func toUnitResponse(unit *model.OrgUnit) *dto.UnitResponse {
	resp := &dto.UnitResponse{
		ID:           unit.UnitID,
		Name:         unit.Name,
		Abbreviation: unit.Abbreviation,
		IsActive:     unit.IsActive,
		CreatedAt:    unit.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    unit.UpdatedAt.Format(time.RFC3339),
	}
	if unit.Details != nil {
		resp.Details = *unit.Details
	}
	return resp
}
