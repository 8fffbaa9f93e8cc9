package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/proj-int-univesp/lai-cmg/internal/model"
)

// UnitRepository is the organizational-unit data-access interface.
type UnitRepository interface {
	Create(ctx context.Context, unit *model.OrgUnit) error
	GetByID(ctx context.Context, id string) (*model.OrgUnit, error)
	GetByName(ctx context.Context, name string) (*model.OrgUnit, error)
	List(ctx context.Context) ([]model.OrgUnit, error)
	ListAll(ctx context.Context) ([]model.OrgUnit, error)
	Update(ctx context.Context, unit *model.OrgUnit) error
	Delete(ctx context.Context, id string) error
	CountStaff(ctx context.Context, unitID string) (int64, error)
}

type unitRepo struct {
	db *gorm.DB
}

// NewUnitRepo creates the gorm-backed UnitRepository.
func NewUnitRepo(db *gorm.DB) UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) Create(ctx context.Context, unit *model.OrgUnit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *unitRepo) GetByID(ctx context.Context, id string) (*model.OrgUnit, error) {
	var unit model.OrgUnit
	err := r.db.WithContext(ctx).
		Where("unit_id = ?", id).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) GetByName(ctx context.Context, name string) (*model.OrgUnit, error) {
	var unit model.OrgUnit
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) List(ctx context.Context) ([]model.OrgUnit, error) {
	var units []model.OrgUnit
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&units).Error
	return units, err
}

func (r *unitRepo) ListAll(ctx context.Context) ([]model.OrgUnit, error) {
	var units []model.OrgUnit
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&units).Error
	return units, err
}

func (r *unitRepo) Update(ctx context.Context, unit *model.OrgUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *unitRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("unit_id = ?", id).
		Delete(&model.OrgUnit{}).Error
}

func (r *unitRepo) CountStaff(ctx context.Context, unitID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.StaffMember{}).
		Where("unit_id = ?", unitID).
		Count(&count).Error
	return count, err
}
