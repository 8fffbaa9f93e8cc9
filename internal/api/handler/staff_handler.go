package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/proj-int-univesp/lai-cmg/internal/dto"
	"github.com/proj-int-univesp/lai-cmg/internal/service"
	"github.com/proj-int-univesp/lai-cmg/pkg/response"
)

// StaffHandler serves the staff-member endpoints.
type StaffHandler struct {
	staffSvc service.StaffService
}

// NewStaffHandler creates a StaffHandler.
func NewStaffHandler(staffSvc service.StaffService) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc}
}

// Create registers a staff member with their login account.
// POST /api/v1/staff
func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	staff, err := h.staffSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.Created(c, staff)
}

// Get returns one staff member.
// GET /api/v1/staff/:id
func (h *StaffHandler) Get(c *gin.Context) {
	staff, err := h.staffSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, staff)
}

// List lists staff members with pagination.
// GET /api/v1/staff
func (h *StaffHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	staff, total, err := h.staffSvc.List(c.Request.Context(), &page)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OKPage(c, staff, total, page.GetPage(), page.GetPageSize())
}

// Update partially updates a staff member.
// PUT /api/v1/staff/:id
func (h *StaffHandler) Update(c *gin.Context) {
	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	staff, err := h.staffSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, staff)
}

// Delete removes a staff member.
// DELETE /api/v1/staff/:id
func (h *StaffHandler) Delete(c *gin.Context) {
	if err := h.staffSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *StaffHandler) handleStaffError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStaffNotFound):
		response.NotFound(c, 14001, "staff member not found")
	case errors.Is(err, service.ErrRegistrationTaken):
		response.Conflict(c, 14002, "registration already in use")
	case errors.Is(err, service.ErrUsernameExists):
		response.Conflict(c, 14003, "username already registered")
	case errors.Is(err, service.ErrUnitNotFound):
		response.BadRequest(c, 14004, "unit does not exist")
	default:
		response.InternalError(c)
	}
}
