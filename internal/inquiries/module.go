// Package inquiries provides the inquiry lifecycle bounded context module.
package inquiries

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"lostfound_backend/internal/events"
	apphttp "lostfound_backend/internal/http"
	"lostfound_backend/internal/inquiries/handler"
	"lostfound_backend/internal/inquiries/ports"
	"lostfound_backend/internal/inquiries/repository"
	"lostfound_backend/internal/inquiries/service"
	"lostfound_backend/platform/logger"
	"lostfound_backend/platform/validator"
)

// Module is the inquiries bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the inquiries module. The match store,
// inventory, uploader, and dispatcher collaborators live in other modules and
// arrive through adapters.
func NewModule(
	pool *pgxpool.Pool,
	matches ports.MatchStore,
	inventory ports.InventoryRemover,
	invCounts ports.InventoryCounts,
	uploader ports.ImageUploader,
	dispatcher ports.MatchDispatcher,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	repo := repository.NewPostgresRepository(pool)
	svc := service.New(repo, matches, inventory, invCounts, uploader, dispatcher, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "inquiries"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapter wiring.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts inquiry routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Submission is throttled harder than the rest of the API.
	ctx.Protected.POST("/inquiries", ctx.SubmitRateLimiter.RateLimit(), m.handler.Submit)

	ctx.Protected.GET("/inquiries", m.handler.ListMine)
	ctx.Protected.GET("/inquiries/:id", m.handler.GetMine)
	ctx.Protected.GET("/inquiries/:id/matched-item", m.handler.GetMatchedItem)
	ctx.Protected.POST("/inquiries/:id/confirm", m.handler.ConfirmMatch)
	ctx.Protected.POST("/inquiries/:id/reject", m.handler.RejectMatch)

	ctx.Staff.GET("/overview", m.handler.Overview)
}

var _ apphttp.Module = (*Module)(nil)
