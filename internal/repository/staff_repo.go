package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/proj-int-univesp/lai-cmg/internal/model"
)

// StaffRepository is the staff-member data-access interface.
type StaffRepository interface {
	// CreateWithAccount persists the account and the member in one
	// transaction.
	CreateWithAccount(ctx context.Context, account *model.Account, staff *model.StaffMember) error
	GetByID(ctx context.Context, id string) (*model.StaffMember, error)
	GetByAccountID(ctx context.Context, accountID string) (*model.StaffMember, error)
	GetByRegistration(ctx context.Context, registration string) (*model.StaffMember, error)
	List(ctx context.Context, offset, limit int) ([]model.StaffMember, int64, error)
	Update(ctx context.Context, staff *model.StaffMember) error
	Delete(ctx context.Context, id string) error
}

type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepo creates the gorm-backed StaffRepository.
func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) CreateWithAccount(ctx context.Context, account *model.Account, staff *model.StaffMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		staff.AccountID = &account.AccountID
		return tx.Create(staff).Error
	})
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (*model.StaffMember, error) {
	var staff model.StaffMember
	err := r.db.WithContext(ctx).
		Preload("Unit").
		Where("staff_id = ?", id).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) GetByAccountID(ctx context.Context, accountID string) (*model.StaffMember, error) {
	var staff model.StaffMember
	err := r.db.WithContext(ctx).
		Preload("Unit").
		Where("account_id = ?", accountID).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) GetByRegistration(ctx context.Context, registration string) (*model.StaffMember, error) {
	var staff model.StaffMember
	err := r.db.WithContext(ctx).
		Where("registration = ?", registration).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) List(ctx context.Context, offset, limit int) ([]model.StaffMember, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.StaffMember{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var staff []model.StaffMember
	err := r.db.WithContext(ctx).
		Preload("Unit").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&staff).Error
	return staff, total, err
}

func (r *staffRepo) Update(ctx context.Context, staff *model.StaffMember) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *staffRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("staff_id = ?", id).
		Delete(&model.StaffMember{}).Error
}
