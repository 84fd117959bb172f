// Package matches provides the match review bounded context module.
package matches

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"lostfound_backend/internal/events"
	apphttp "lostfound_backend/internal/http"
	"lostfound_backend/internal/matches/handler"
	"lostfound_backend/internal/matches/repository"
	"lostfound_backend/internal/matches/service"
	"lostfound_backend/platform/logger"
)

// Module is the matches bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the matches module. The inquiry store
// arrives through an adapter over the inquiries module.
func NewModule(pool *pgxpool.Pool, inquiries service.InquiryStore, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.NewPostgresRepository(pool)
	svc := service.New(repo, inquiries, bus, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "matches"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapter wiring.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts match review routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Staff.GET("/review-queue", m.handler.ReviewQueue)
	ctx.Staff.GET("/inquiries/:id/candidates", m.handler.Candidates)
	ctx.Staff.POST("/candidates/:id/approve", m.handler.Approve)
	ctx.Staff.POST("/inquiries/:id/no-match", m.handler.NoMatch)
}

var _ apphttp.Module = (*Module)(nil)
