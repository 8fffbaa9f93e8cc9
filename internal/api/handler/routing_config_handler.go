package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/proj-int-univesp/lai-cmg/internal/dto"
	"github.com/proj-int-univesp/lai-cmg/internal/service"
	"github.com/proj-int-univesp/lai-cmg/pkg/response"
)

// RoutingConfigHandler serves the responsibility-routing endpoints.
type RoutingConfigHandler struct {
	routingSvc service.RoutingService
}

// NewRoutingConfigHandler creates a RoutingConfigHandler.
func NewRoutingConfigHandler(routingSvc service.RoutingService) *RoutingConfigHandler {
	return &RoutingConfigHandler{routingSvc: routingSvc}
}

// Get returns the current responsibility assignments.
// GET /api/v1/routing-config
func (h *RoutingConfigHandler) Get(c *gin.Context) {
	cfg, err := h.routingSvc.Get(c.Request.Context())
	if err != nil {
		h.handleRoutingError(c, err)
		return
	}

	response.OK(c, cfg)
}

// Update replaces the responsibility assignments.
// PUT /api/v1/routing-config
func (h *RoutingConfigHandler) Update(c *gin.Context) {
	var req dto.UpdateRoutingConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	cfg, err := h.routingSvc.Update(c.Request.Context(), &req)
	if err != nil {
		h.handleRoutingError(c, err)
		return
	}

	response.OK(c, cfg)
}

func (h *RoutingConfigHandler) handleRoutingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnitNotFound):
		response.BadRequest(c, 15001, "assigned unit does not exist")
	default:
		response.InternalError(c)
	}
}
