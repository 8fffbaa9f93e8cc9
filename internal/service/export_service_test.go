package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/proj-int-univesp/lai-cmg/internal/model"
)

func TestExportService_Register(t *testing.T) {
	f := newRequestFixture(t)
	svc := NewExportService(f.repo, NewActorResolver(f.repo), zap.NewNop())

	id := f.submit(t)
	year := f.requests.requests[id].RegistrationYear

	buf, filename, err := svc.ExportRegister(context.Background(), f.intakeAccount, model.RoleStaff, year)
	if err != nil {
		t.Fatalf("ExportRegister should succeed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("workbook should not be empty")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %s", filename)
	}
}

func TestExportService_Register_Forbidden(t *testing.T) {
	f := newRequestFixture(t)
	svc := NewExportService(f.repo, NewActorResolver(f.repo), zap.NewNop())

	id := f.submit(t)
	year := f.requests.requests[id].RegistrationYear

	if _, _, err := svc.ExportRegister(context.Background(), f.sourceAccount, model.RoleStaff, year); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-intake staff must not export, got: %v", err)
	}
	if _, _, err := svc.ExportRegister(context.Background(), f.citizenAccount, model.RoleCitizen, year); !errors.Is(err, ErrForbidden) {
		t.Errorf("citizens must not export, got: %v", err)
	}
}

func TestExportService_Register_EmptyYear(t *testing.T) {
	f := newRequestFixture(t)
	svc := NewExportService(f.repo, NewActorResolver(f.repo), zap.NewNop())

	if _, _, err := svc.ExportRegister(context.Background(), f.intakeAccount, model.RoleStaff, 1999); !errors.Is(err, ErrExportEmptyYear) {
		t.Errorf("expected ErrExportEmptyYear, got: %v", err)
	}
}
