// Package inventory provides the found-items inventory bounded context module.
package inventory

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "lostfound_backend/internal/http"
	"lostfound_backend/internal/inventory/handler"
	"lostfound_backend/internal/inventory/repository"
	"lostfound_backend/internal/inventory/service"
	"lostfound_backend/platform/logger"
	"lostfound_backend/platform/validator"
)

// Module is the inventory bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the inventory module.
func NewModule(pool *pgxpool.Pool, uploader service.ImageUploader, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.NewPostgresRepository(pool)
	svc := service.New(repo, uploader, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "inventory"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapter wiring.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts inventory routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	items := ctx.Staff.Group("/items")
	items.POST("", m.handler.Create)
	items.GET("", m.handler.List)
	items.GET("/:id", m.handler.Get)
	items.PUT("/:id", m.handler.Update)
	items.POST("/:id/images", m.handler.AddImages)
	items.DELETE("/:id", m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
