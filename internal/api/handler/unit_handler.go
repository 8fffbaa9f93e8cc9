package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/proj-int-univesp/lai-cmg/internal/dto"
	"github.com/proj-int-univesp/lai-cmg/internal/service"
	"github.com/proj-int-univesp/lai-cmg/pkg/response"
)

// UnitHandler serves the organizational-unit endpoints.
type UnitHandler struct {
	unitSvc service.UnitService
}

// NewUnitHandler creates a UnitHandler.
func NewUnitHandler(unitSvc service.UnitService) *UnitHandler {
	return &UnitHandler{unitSvc: unitSvc}
}

// Create creates a unit.
// POST /api/v1/units
func (h *UnitHandler) Create(c *gin.Context) {
	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	unit, err := h.unitSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.Created(c, unit)
}

// Get returns one unit.
// GET /api/v1/units/:id
func (h *UnitHandler) Get(c *gin.Context) {
	unit, err := h.unitSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.OK(c, unit)
}

// List lists units, active-only by default.
// GET /api/v1/units
func (h *UnitHandler) List(c *gin.Context) {
	var q dto.UnitListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	units, err := h.unitSvc.List(c.Request.Context(), q.IncludeInactive)
	if err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.OK(c, units)
}

// Update partially updates a unit.
// PUT /api/v1/units/:id
func (h *UnitHandler) Update(c *gin.Context) {
	var req dto.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	unit, err := h.unitSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.OK(c, unit)
}

// Delete removes a unit without assigned staff.
// DELETE /api/v1/units/:id
func (h *UnitHandler) Delete(c *gin.Context) {
	if err := h.unitSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *UnitHandler) handleUnitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnitNotFound):
		response.NotFound(c, 13001, "unit not found")
	case errors.Is(err, service.ErrUnitNameTaken):
		response.Conflict(c, 13002, "a unit with this name already exists")
	case errors.Is(err, service.ErrUnitHasStaff):
		response.Conflict(c, 13003, "unit still has staff members assigned")
	default:
		response.InternalError(c)
	}
}
