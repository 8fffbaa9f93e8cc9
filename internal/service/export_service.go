package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/proj-int-univesp/lai-cmg/internal/model"
	"github.com/proj-int-univesp/lai-cmg/internal/repository"
)

// ── export module business errors ──

var (
	ErrExportEmptyYear    = errors.New("no requests registered in this year")
	ErrExportGenerateFail = errors.New("generating the spreadsheet failed")
)

// ExportService produces the yearly register spreadsheet. The buffer is
// returned to the handler, which sets the download headers.
type ExportService interface {
	ExportRegister(ctx context.Context, accountID, role string, year int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	actors ActorResolver
	logger *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(repo *repository.Repository, actors ActorResolver, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, actors: actors, logger: logger}
}

// ExportRegister writes the full register of one registration year as an
// .xlsx workbook, one row per request in number order. Restricted to staff
// of the intake unit, the same gate as the register search.
func (s *exportService) ExportRegister(ctx context.Context, accountID, role string, year int) (*bytes.Buffer, string, error) {
	actor, err := s.actors.Resolve(ctx, accountID, role)
	if err != nil {
		return nil, "", err
	}
	routing, err := s.repo.RoutingConfig.Get(ctx)
	if err != nil {
		return nil, "", err
	}
	if !actor.IsStaff() || !routing.Authorizes(actor.Staff.UnitID, model.ResponsibilityIntake) {
		return nil, "", ErrForbidden
	}

	records, err := s.repo.Request.ListByYear(ctx, year)
	if err != nil {
		s.logger.Error("loading yearly register failed", zap.Int("year", year), zap.Error(err))
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", ErrExportEmptyYear
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := fmt.Sprintf("Registro %d", year)
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "C", 28)
	f.SetColWidth(sheetName, "D", "D", 14)
	f.SetColWidth(sheetName, "E", "E", 24)
	f.SetColWidth(sheetName, "F", "F", 24)
	f.SetColWidth(sheetName, "G", "G", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Registro de pedidos de informação - %d", year))
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Protocolo", "Título", "Requerente", "Protocolado em", "Unidade de origem", "Situação", "Deferido"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 2), h)
		f.SetCellStyle(sheetName, cell(col, 2), cell(col, 2), headerStyle)
	}

	row := 3
	for i := range records {
		r := &records[i]

		f.SetCellValue(sheetName, cell("A", row), fmt.Sprintf("%d/%d", r.RegistrationNumber, r.RegistrationYear))
		f.SetCellValue(sheetName, cell("B", row), r.Title)
		if r.Requester != nil {
			f.SetCellValue(sheetName, cell("C", row), r.Requester.Name)
		}
		f.SetCellValue(sheetName, cell("D", row), r.SubmittedAt.Format("02/01/2006"))
		if r.SourceUnit != nil {
			f.SetCellValue(sheetName, cell("E", row), r.SourceUnit.Name)
		} else {
			f.SetCellValue(sheetName, cell("E", row), "-")
		}
		f.SetCellValue(sheetName, cell("F", row), r.Situation.Label())

		outcome := "-"
		if r.InitialDecidedAt != nil {
			if finalGrant(r) {
				outcome = "Sim"
			} else {
				outcome = "Não"
			}
		}
		f.SetCellValue(sheetName, cell("G", row), outcome)

		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing spreadsheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("registro_lai_%d_%s.xlsx", year, time.Now().Format("20060102"))
	return buf, filename, nil
}

// finalGrant reflects the latest decision tier reached.
func finalGrant(r *model.InfoRequest) bool {
	if r.SecondAppealDecidedAt != nil {
		return r.SecondAppealGranted
	}
	if r.FirstAppealDecidedAt != nil {
		return r.FirstAppealGranted
	}
	return r.InitialGranted
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
