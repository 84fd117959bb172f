package matching

import (
	apphttp "lostfound_backend/internal/http"
)

// Module exposes the matching pipeline over HTTP, implementing http.Module.
// The service itself is also driven by the background worker.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule wraps an already-constructed matching service.
func NewModule(svc *Service) *Module {
	return &Module{
		handler: NewHandler(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "matching"
}

// Service returns the matching service for worker wiring.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts the staff-only matching route.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Staff.POST("/matching/run", m.handler.Run)
}

var _ apphttp.Module = (*Module)(nil)
