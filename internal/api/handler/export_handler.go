package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proj-int-univesp/lai-cmg/internal/service"
	"github.com/proj-int-univesp/lai-cmg/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the register spreadsheet download.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRegister downloads the yearly register as .xlsx.
// GET /api/v1/export/register?year=2026
func (h *ExportHandler) ExportRegister(c *gin.Context) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2200 {
			response.BadRequest(c, 10001, "invalid year")
			return
		}
		year = parsed
	}

	buf, filename, err := h.exportSvc.ExportRegister(c.Request.Context(), accountID, role, year)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 16001, "not authorized to export the register")
	case errors.Is(err, service.ErrExportEmptyYear):
		response.NotFound(c, 16002, "no requests registered in this year")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
