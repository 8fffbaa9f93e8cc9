package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/proj-int-univesp/lai-cmg/internal/model"
)

// RoutingConfigRepository is the routing-configuration data-access
// interface. The configuration is a single row: Get creates it on first
// read, Update always targets the same row, and no delete exists.
type RoutingConfigRepository interface {
	Get(ctx context.Context) (*model.RoutingConfig, error)
	Update(ctx context.Context, cfg *model.RoutingConfig) error
}

type routingConfigRepo struct {
	db *gorm.DB
}

// NewRoutingConfigRepo creates the gorm-backed RoutingConfigRepository.
func NewRoutingConfigRepo(db *gorm.DB) RoutingConfigRepository {
	return &routingConfigRepo{db: db}
}

func (r *routingConfigRepo) Get(ctx context.Context) (*model.RoutingConfig, error) {
	var cfg model.RoutingConfig
	err := r.db.WithContext(ctx).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = model.RoutingConfig{Singleton: true}
		if err := r.db.WithContext(ctx).Create(&cfg).Error; err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *routingConfigRepo) Update(ctx context.Context, cfg *model.RoutingConfig) error {
	cfg.Singleton = true
	return r.db.WithContext(ctx).Save(cfg).Error
}
