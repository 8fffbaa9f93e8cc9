package handler

import "github.com/proj-int-univesp/lai-cmg/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth    *AuthHandler
	Request *RequestHandler
	Unit    *UnitHandler
	Staff   *StaffHandler
	Routing *RoutingConfigHandler
	Export  *ExportHandler
}

// NewHandler wires the handler aggregate from the service aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Request: NewRequestHandler(svc.Request),
		Unit:    NewUnitHandler(svc.Unit),
		Staff:   NewStaffHandler(svc.Staff),
		Routing: NewRoutingConfigHandler(svc.Routing),
		Export:  NewExportHandler(svc.Export),
	}
}
