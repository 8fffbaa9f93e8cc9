package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/proj-int-univesp/lai-cmg/internal/dto"
	"github.com/proj-int-univesp/lai-cmg/internal/model"
	"github.com/proj-int-univesp/lai-cmg/internal/repository"
)

func setupTestStaffService(t *testing.T) (StaffService, *model.OrgUnit, *model.OrgUnit) {
	t.Helper()

	accounts := newMockAccountRepo()
	staff := newMockStaffRepo(accounts)
	units := newMockUnitRepo(staff)
	staff.units = units
	repo := &repository.Repository{
		Account: accounts,
		Staff:   staff,
		Unit:    units,
	}

	ouv := &model.OrgUnit{Name: "Ouvidoria", Abbreviation: "OUV", IsActive: true}
	sob := &model.OrgUnit{Name: "Secretaria de Obras", Abbreviation: "SOB", IsActive: true}
	for _, u := range []*model.OrgUnit{ouv, sob} {
		if err := units.Create(context.Background(), u); err != nil {
			t.Fatalf("seeding unit %s: %v", u.Abbreviation, err)
		}
	}

	return NewStaffService(repo, zap.NewNop()), ouv, sob
}

func staffPayload(unitID string) *dto.CreateStaffRequest {
	return &dto.CreateStaffRequest{
		Name:         "Ana Pereira",
		Registration: "1001",
		JobTitle:     "Analista",
		UnitID:       unitID,
		Username:     "ana.pereira",
		Email:        "ana.pereira@cmg.example",
		Password:     "senha-segura-1",
	}
}

func TestStaffService_Create_Success(t *testing.T) {
	svc, ouv, _ := setupTestStaffService(t)

	staff, err := svc.Create(context.Background(), staffPayload(ouv.UnitID))
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if staff.Registration != "1001" {
		t.Errorf("registration = %s", staff.Registration)
	}
	if staff.ID == "" {
		t.Error("created staff should have an id")
	}
}

func TestStaffService_Create_DuplicateRegistration(t *testing.T) {
	svc, ouv, _ := setupTestStaffService(t)

	if _, err := svc.Create(context.Background(), staffPayload(ouv.UnitID)); err != nil {
		t.Fatalf("first create: %v", err)
	}

	second := staffPayload(ouv.UnitID)
	second.Username = "outra.conta"
	if _, err := svc.Create(context.Background(), second); !errors.Is(err, ErrRegistrationTaken) {
		t.Errorf("expected ErrRegistrationTaken, got: %v", err)
	}
}

func TestStaffService_Create_UnknownUnit(t *testing.T) {
	svc, _, _ := setupTestStaffService(t)

	if _, err := svc.Create(context.Background(), staffPayload("missing")); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound, got: %v", err)
	}
}

func TestStaffService_Update_MoveUnit(t *testing.T) {
	svc, ouv, sob := setupTestStaffService(t)

	created, err := svc.Create(context.Background(), staffPayload(ouv.UnitID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateStaffRequest{UnitID: &sob.UnitID})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if updated.Unit == nil || updated.Unit.ID != sob.UnitID {
		t.Errorf("staff should now belong to %s", sob.Abbreviation)
	}
}

func TestStaffService_List_Paginated(t *testing.T) {
	svc, ouv, _ := setupTestStaffService(t)

	for i := 0; i < 3; i++ {
		req := staffPayload(ouv.UnitID)
		req.Registration = fmt.Sprintf("10%02d", i)
		req.Username = fmt.Sprintf("servidor%d", i)
		if _, err := svc.Create(context.Background(), req); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page, total, err := svc.List(context.Background(), &dto.PaginationRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(page) != 2 {
		t.Errorf("page size = %d, want 2", len(page))
	}

	rest, _, err := svc.List(context.Background(), &dto.PaginationRequest{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("second page size = %d, want 1", len(rest))
	}
}

func TestStaffService_Delete(t *testing.T) {
	svc, ouv, _ := setupTestStaffService(t)

	created, err := svc.Create(context.Background(), staffPayload(ouv.UnitID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Errorf("Delete should succeed: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, ErrStaffNotFound) {
		t.Errorf("expected ErrStaffNotFound after delete, got: %v", err)
	}
}
