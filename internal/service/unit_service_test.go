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

func setupTestUnitService() (UnitService, *mockUnitRepo, *mockStaffRepo) {
	accounts := newMockAccountRepo()
	staff := newMockStaffRepo(accounts)
	units := newMockUnitRepo(staff)
	repo := &repository.Repository{
		Account: accounts,
		Staff:   staff,
		Unit:    units,
	}
	return NewUnitService(repo, zap.NewNop()), units, staff
}

func TestUnitService_Create_Success(t *testing.T) {
	svc, _, _ := setupTestUnitService()

	unit, err := svc.Create(context.Background(), &dto.CreateUnitRequest{
		Name:         "Secretaria de Educação",
		Abbreviation: "SEDUC",
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if !unit.IsActive {
		t.Error("new units start active")
	}
}

func TestUnitService_Create_DuplicateName(t *testing.T) {
	svc, _, _ := setupTestUnitService()

	if _, err := svc.Create(context.Background(), &dto.CreateUnitRequest{Name: "Ouvidoria", Abbreviation: "OUV"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), &dto.CreateUnitRequest{Name: "Ouvidoria", Abbreviation: "OUV2"})
	if !errors.Is(err, ErrUnitNameTaken) {
		t.Errorf("expected ErrUnitNameTaken, got: %v", err)
	}
}

func TestUnitService_Update_Deactivate(t *testing.T) {
	svc, _, _ := setupTestUnitService()

	unit, err := svc.Create(context.Background(), &dto.CreateUnitRequest{Name: "Ouvidoria", Abbreviation: "OUV"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	inactive := false
	updated, err := svc.Update(context.Background(), unit.ID, &dto.UpdateUnitRequest{IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if updated.IsActive {
		t.Error("unit should be inactive after update")
	}

	// default listing hides inactive units
	active, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active units, got %d", len(active))
	}
	all, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 unit overall, got %d", len(all))
	}
}

func TestUnitService_Delete_BlockedWithStaff(t *testing.T) {
	svc, units, staff := setupTestUnitService()

	unit, err := svc.Create(context.Background(), &dto.CreateUnitRequest{Name: "Ouvidoria", Abbreviation: "OUV"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	account := &model.Account{Username: "ana", Role: model.RoleStaff}
	member := &model.StaffMember{Name: "Ana", Registration: "1001", JobTitle: "Analista", UnitID: unit.ID}
	if err := staff.CreateWithAccount(context.Background(), account, member); err != nil {
		t.Fatalf("seeding staff: %v", err)
	}

	if err := svc.Delete(context.Background(), unit.ID); !errors.Is(err, ErrUnitHasStaff) {
		t.Errorf("expected ErrUnitHasStaff, got: %v", err)
	}

	if err := staff.Delete(context.Background(), member.StaffID); err != nil {
		t.Fatalf("removing staff: %v", err)
	}
	if err := svc.Delete(context.Background(), unit.ID); err != nil {
		t.Errorf("Delete should succeed once the unit is empty: %v", err)
	}
	if _, ok := units.units[unit.ID]; ok {
		t.Error("unit should be gone")
	}
}

func TestUnitService_Get_NotFound(t *testing.T) {
	svc, _, _ := setupTestUnitService()

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound, got: %v", err)
	}
}
