package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/proj-int-univesp/lai-cmg/internal/dto"
	"github.com/proj-int-univesp/lai-cmg/internal/model"
	"github.com/proj-int-univesp/lai-cmg/internal/repository"
)

func setupTestRoutingService(t *testing.T) (RoutingService, *mockRoutingConfigRepo, string) {
	t.Helper()
	accounts := newMockAccountRepo()
	staff := newMockStaffRepo(accounts)
	units := newMockUnitRepo(staff)
	routing := newMockRoutingConfigRepo()
	repo := &repository.Repository{
		Account:       accounts,
		Staff:         staff,
		Unit:          units,
		RoutingConfig: routing,
	}

	unit := &model.OrgUnit{Name: "Ouvidoria", Abbreviation: "OUV", IsActive: true}
	if err := units.Create(context.Background(), unit); err != nil {
		t.Fatalf("seeding unit: %v", err)
	}

	return NewRoutingService(repo, zap.NewNop()), routing, unit.UnitID
}

func TestRoutingService_Get_Unassigned(t *testing.T) {
	svc, _, _ := setupTestRoutingService(t)

	cfg, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get should succeed: %v", err)
	}
	if cfg.Intake != nil || cfg.Opinion != nil {
		t.Error("fresh configuration has no assignments")
	}
}

func TestRoutingService_Update_AssignAndClear(t *testing.T) {
	svc, routing, unitID := setupTestRoutingService(t)

	cfg, err := svc.Update(context.Background(), &dto.UpdateRoutingConfigRequest{IntakeUnitID: &unitID})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if cfg.Intake == nil || cfg.Intake.ID != unitID {
		t.Error("intake assignment should resolve to the unit")
	}

	// an unset field clears its assignment
	cfg, err = svc.Update(context.Background(), &dto.UpdateRoutingConfigRequest{})
	if err != nil {
		t.Fatalf("clearing update: %v", err)
	}
	if cfg.Intake != nil {
		t.Error("intake assignment should be cleared")
	}
	if routing.cfg.IntakeUnitID != nil {
		t.Error("cleared assignment should persist as null")
	}
}

func TestRoutingService_Update_UnknownUnit(t *testing.T) {
	svc, _, _ := setupTestRoutingService(t)

	missing := "no-such-unit"
	_, err := svc.Update(context.Background(), &dto.UpdateRoutingConfigRequest{OpinionUnitID: &missing})
	if !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound, got: %v", err)
	}
}

// Authorizes is the predicate behind every staff guard; an unassigned
// responsibility authorizes nobody.
func TestRoutingConfig_Authorizes(t *testing.T) {
	unitID := "unit-OUV"
	cfg := &model.RoutingConfig{Singleton: true, IntakeUnitID: &unitID}

	if !cfg.Authorizes("unit-OUV", model.ResponsibilityIntake) {
		t.Error("assigned unit should be authorized")
	}
	if cfg.Authorizes("unit-XYZ", model.ResponsibilityIntake) {
		t.Error("other units should not be authorized")
	}
	if cfg.Authorizes("unit-OUV", model.ResponsibilityOpinion) {
		t.Error("unassigned responsibilities authorize nobody")
	}
}
