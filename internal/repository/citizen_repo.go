package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/proj-int-univesp/lai-cmg/internal/model"
)

// CitizenRepository is the requester-profile data-access interface.
type CitizenRepository interface {
	// CreateWithAccount persists the account and the profile in one
	// transaction so registration is all-or-nothing.
	CreateWithAccount(ctx context.Context, account *model.Account, citizen *model.Citizen) error
	GetByID(ctx context.Context, id string) (*model.Citizen, error)
	GetByAccountID(ctx context.Context, accountID string) (*model.Citizen, error)
	Update(ctx context.Context, citizen *model.Citizen) error
}

type citizenRepo struct {
	db *gorm.DB
}

// NewCitizenRepo creates the gorm-backed CitizenRepository.
func NewCitizenRepo(db *gorm.DB) CitizenRepository {
	return &citizenRepo{db: db}
}

func (r *citizenRepo) CreateWithAccount(ctx context.Context, account *model.Account, citizen *model.Citizen) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		citizen.AccountID = &account.AccountID
		return tx.Create(citizen).Error
	})
}

func (r *citizenRepo) GetByID(ctx context.Context, id string) (*model.Citizen, error) {
	var citizen model.Citizen
	err := r.db.WithContext(ctx).
		Where("citizen_id = ?", id).
		First(&citizen).Error
	if err != nil {
		return nil, err
	}
	return &citizen, nil
}

func (r *citizenRepo) GetByAccountID(ctx context.Context, accountID string) (*model.Citizen, error) {
	var citizen model.Citizen
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&citizen).Error
	if err != nil {
		return nil, err
	}
	return &citizen, nil
}

func (r *citizenRepo) Update(ctx context.Context, citizen *model.Citizen) error {
	return r.db.WithContext(ctx).Save(citizen).Error
}
