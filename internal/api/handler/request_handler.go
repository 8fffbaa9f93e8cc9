package handler

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/proj-int-univesp/lai-cmg/internal/dto"
	"github.com/proj-int-univesp/lai-cmg/internal/service"
	pkgerrors "github.com/proj-int-univesp/lai-cmg/pkg/errors"
	"github.com/proj-int-univesp/lai-cmg/pkg/response"
)

// RequestHandler serves the information-request endpoints: submission,
// queues, the register search, detail view, attachment download and every
// lifecycle transition.
type RequestHandler struct {
	requestSvc service.RequestService
}

// NewRequestHandler creates a RequestHandler.
func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

// Create submits a new information request.
// POST /api/v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	detail, err := h.requestSvc.Create(c.Request.Context(), accountID, role, &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.Created(c, detail)
}

// Get returns the record detail.
// GET /api/v1/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	detail, err := h.requestSvc.Get(c.Request.Context(), accountID, role, c.Param("id"))
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, detail)
}

// ListMine lists the authenticated citizen's own requests.
// GET /api/v1/requests/mine
func (h *RequestHandler) ListMine(c *gin.Context) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	list, err := h.requestSvc.ListMine(c.Request.Context(), accountID, role)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, list)
}

// Queue lists one lifecycle work queue.
// GET /api/v1/requests/queues/:stage
func (h *RequestHandler) Queue(c *gin.Context) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	list, err := h.requestSvc.Queue(c.Request.Context(), accountID, role, c.Param("stage"))
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, list)
}

// Search runs the general register search.
// GET /api/v1/requests/search
func (h *RequestHandler) Search(c *gin.Context) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	var q dto.RequestSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, err := h.requestSvc.Search(c.Request.Context(), accountID, role, &q)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, list)
}

// DownloadAttachment streams the fulfillment attachment.
// GET /api/v1/requests/:id/attachment
func (h *RequestHandler) DownloadAttachment(c *gin.Context) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	path, err := h.requestSvc.AttachmentPath(c.Request.Context(), accountID, role, c.Param("id"))
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// Triage routes an intake request to its source unit.
// POST /api/v1/requests/:id/triage
func (h *RequestHandler) Triage(c *gin.Context) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	detail, err := h.requestSvc.Triage(c.Request.Context(), accountID, role, c.Param("id"), &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, detail)
}

// Fulfill attaches the requested information (multipart form) and moves the
// record to the opinion stage.
// POST /api/v1/requests/:id/fulfill
func (h *RequestHandler) Fulfill(c *gin.Context) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.FulfillRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	var (
		attachmentName string
		attachment     io.Reader
	)
	if fileHeader, err := c.FormFile("attachment"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			response.BadRequest(c, 10001, "unreadable attachment")
			return
		}
		defer f.Close()
		attachment = f
		attachmentName = fileHeader.Filename
	}

	detail, err := h.requestSvc.Fulfill(c.Request.Context(), accountID, role, c.Param("id"), &req, attachmentName, attachment)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, detail)
}

// Opine records the written opinion.
// POST /api/v1/requests/:id/opinion
func (h *RequestHandler) Opine(c *gin.Context) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.OpinionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	detail, err := h.requestSvc.Opine(c.Request.Context(), accountID, role, c.Param("id"), &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, detail)
}

// DecideInitial records the initial decision.
// POST /api/v1/requests/:id/decision
func (h *RequestHandler) DecideInitial(c *gin.Context) {
	h.decide(c, h.requestSvc.DecideInitial)
}

// FileFirstAppeal files the first-tier appeal.
// POST /api/v1/requests/:id/first-appeal
func (h *RequestHandler) FileFirstAppeal(c *gin.Context) {
	h.appeal(c, h.requestSvc.FileFirstAppeal)
}

// DecideFirstAppeal records the first-appeal decision.
// POST /api/v1/requests/:id/first-appeal/decision
func (h *RequestHandler) DecideFirstAppeal(c *gin.Context) {
	h.decide(c, h.requestSvc.DecideFirstAppeal)
}

// FileSecondAppeal files the final-tier appeal.
// POST /api/v1/requests/:id/second-appeal
func (h *RequestHandler) FileSecondAppeal(c *gin.Context) {
	h.appeal(c, h.requestSvc.FileSecondAppeal)
}

// DecideSecondAppeal records the final decision.
// POST /api/v1/requests/:id/second-appeal/decision
func (h *RequestHandler) DecideSecondAppeal(c *gin.Context) {
	h.decide(c, h.requestSvc.DecideSecondAppeal)
}

// decide binds the shared decision payload and dispatches to one of the
// three decision tiers.
func (h *RequestHandler) decide(c *gin.Context, fn func(ctx context.Context, accountID, role, id string, req *dto.DecisionRequest) (*dto.RequestDetailResponse, error)) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	detail, err := fn(c.Request.Context(), accountID, role, c.Param("id"), &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, detail)
}

// appeal binds the shared appeal payload and dispatches to one of the two
// appeal tiers.
func (h *RequestHandler) appeal(c *gin.Context, fn func(ctx context.Context, accountID, role, id string, req *dto.AppealRequest) (*dto.RequestDetailResponse, error)) {
	accountID, role, ok := mustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.AppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	detail, err := fn(c.Request.Context(), accountID, role, c.Param("id"), &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, detail)
}

func (h *RequestHandler) handleRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 12001, "information request not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 12002, "not authorized for this action")
	case errors.Is(err, service.ErrJustificationRequired):
		response.BadRequest(c, 12003, "a denial requires a justification")
	case errors.Is(err, service.ErrUnknownQueue):
		response.BadRequest(c, 12004, "unknown queue stage")
	case errors.Is(err, service.ErrUnitNotFound):
		response.BadRequest(c, 12005, "target unit does not exist")
	case errors.Is(err, service.ErrNoAttachment):
		response.NotFound(c, 12006, "request has no attachment")
	case errors.Is(err, service.ErrAttachmentTooLarge):
		response.BadRequest(c, 12007, "attachment exceeds the size limit")
	case errors.Is(err, service.ErrInvalidDateFilter):
		response.BadRequest(c, 12009, "date filters must be YYYY-MM-DD")
	case errors.Is(err, pkgerrors.ErrConflict):
		response.Conflict(c, 12008, "request modified concurrently, try again")
	default:
		response.InternalError(c)
	}
}
