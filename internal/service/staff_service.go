package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/proj-int-univesp/lai-cmg/internal/dto"
	"github.com/proj-int-univesp/lai-cmg/internal/model"
	"github.com/proj-int-univesp/lai-cmg/internal/repository"
)

// ── staff module business errors ──

var (
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrRegistrationTaken = errors.New("a staff member with this registration already exists")
)

// StaffService manages staff members and their accounts.
type StaffService interface {
	Create(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	Get(ctx context.Context, id string) (*dto.StaffResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.StaffResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	Delete(ctx context.Context, id string) error
}

type staffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStaffService creates a StaffService instance.
func NewStaffService(repo *repository.Repository, logger *zap.Logger) StaffService {
	return &staffService{repo: repo, logger: logger}
}

// Create registers a staff member together with their login account, in one
// transaction.
func (s *staffService) Create(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if _, err := s.repo.Staff.GetByRegistration(ctx, req.Registration); err == nil {
		return nil, ErrRegistrationTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("registration lookup failed", zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.Account.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.Unit.GetByID(ctx, req.UnitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleStaff,
	}
	staff := &model.StaffMember{
		Name:         req.Name,
		Registration: req.Registration,
		JobTitle:     req.JobTitle,
		UnitID:       req.UnitID,
	}

	if err := s.repo.Staff.CreateWithAccount(ctx, account, staff); err != nil {
		s.logger.Error("staff creation failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("staff member created",
		zap.String("staff_id", staff.StaffID),
		zap.String("registration", staff.Registration))

	created, err := s.repo.Staff.GetByID(ctx, staff.StaffID)
	if err != nil {
		return nil, err
	}
	return toStaffResponse(created), nil
}

func (s *staffService) Get(ctx context.Context, id string) (*dto.StaffResponse, error) {
	staff, err := s.getStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

func (s *staffService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.StaffResponse, int64, error) {
	members, total, err := s.repo.Staff.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("listing staff failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StaffResponse, 0, len(members))
	for i := range members {
		result = append(result, *toStaffResponse(&members[i]))
	}
	return result, total, nil
}

func (s *staffService) Update(ctx context.Context, id string, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	staff, err := s.getStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.JobTitle != nil {
		staff.JobTitle = *req.JobTitle
	}
	if req.UnitID != nil && *req.UnitID != staff.UnitID {
		if _, err := s.repo.Unit.GetByID(ctx, *req.UnitID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnitNotFound
			}
			return nil, err
		}
		staff.UnitID = *req.UnitID
		staff.Unit = nil
	}

	if err := s.repo.Staff.Update(ctx, staff); err != nil {
		s.logger.Error("staff update failed", zap.String("staff_id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStaffResponse(updated), nil
}

func (s *staffService) Delete(ctx context.Context, id string) error {
	if _, err := s.getStaff(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Staff.Delete(ctx, id); err != nil {
		s.logger.Error("staff deletion failed", zap.String("staff_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("staff member deleted", zap.String("staff_id", id))
	return nil
}

func (s *staffService) getStaff(ctx context.Context, id string) (*model.StaffMember, error) {
	staff, err := s.repo.Staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("loading staff member failed", zap.String("staff_id", id), zap.Error(err))
		return nil, err
	}
	return staff, nil
}

func toStaffResponse(staff *model.StaffMember) *dto.StaffResponse {
	resp := &dto.StaffResponse{
		ID:           staff.StaffID,
		Name:         staff.Name,
		Registration: staff.Registration,
		JobTitle:     staff.JobTitle,
		CreatedAt:    staff.CreatedAt.Format(time.RFC3339),
	}
	if staff.Unit != nil {
		resp.Unit = toUnitResponse(staff.Unit)
	}
	return resp
}
