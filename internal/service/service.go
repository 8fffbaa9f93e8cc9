package service

import (
	"go.uber.org/zap"

	"github.com/proj-int-univesp/lai-cmg/config"
	"github.com/proj-int-univesp/lai-cmg/internal/repository"
	"github.com/proj-int-univesp/lai-cmg/pkg/jwt"
	"github.com/proj-int-univesp/lai-cmg/pkg/redis"
)

// Service aggregates every service behind one entry point.
type Service struct {
	Auth    AuthService
	Request RequestService
	Unit    UnitService
	Staff   StaffService
	Routing RoutingService
	Export  ExportService
}

// NewService builds the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	actors := NewActorResolver(repo)
	return &Service{
		Auth:    NewAuthService(repo, jwtMgr, rdb, logger),
		Request: NewRequestService(cfg, repo, actors, logger),
		Unit:    NewUnitService(repo, logger),
		Staff:   NewStaffService(repo, logger),
		Routing: NewRoutingService(repo, logger),
		Export:  NewExportService(repo, actors, logger),
	}
}
