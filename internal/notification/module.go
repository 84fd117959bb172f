// Package notification turns domain events into user-facing signals: SSE
// pushes for connected clients and email for the inquiry milestones. Domain
// modules publish events and never know about transports or templates.
package notification

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lostfound_backend/internal/email"
	"lostfound_backend/internal/events"
	apphttp "lostfound_backend/internal/http"
	"lostfound_backend/internal/notification/sse"
	"lostfound_backend/platform/httpkit"
	"lostfound_backend/platform/logger"
)

// Module is the notification module implementing http.Module.
type Module struct {
	sse        *sse.Service
	sender     email.Sender
	profiles   ProfileReader
	appBaseURL string
	log        *logger.Logger
}

// NewModule creates the notification module.
func NewModule(sseService *sse.Service, sender email.Sender, profiles ProfileReader, appBaseURL string, log *logger.Logger) *Module {
	return &Module{
		sse:        sseService,
		sender:     sender,
		profiles:   profiles,
		appBaseURL: appBaseURL,
		log:        log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// SSE returns the SSE service for shutdown wiring.
func (m *Module) SSE() *sse.Service {
	return m.sse
}

// RegisterRoutes mounts the SSE stream endpoint.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/inquiries/events", m.sse.Handler(func(c *gin.Context) (uuid.UUID, bool, bool) {
		id := httpkit.GetIdentity(c)
		if !id.IsAuthenticated() {
			return uuid.Nil, false, false
		}
		return id.UserID(), id.IsStaff(), true
	}))
}

// RegisterHandlers subscribes to domain events.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.InquiryStatusChanged{}.EventName(), m)
	bus.Subscribe(events.MatchingCompleted{}.EventName(), m)
	bus.Subscribe(events.InquiryMatched{}.EventName(), m)
	bus.Subscribe(events.InquiryResolved{}.EventName(), m)
}

// Handle routes events to the appropriate notification.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.InquiryStatusChanged:
		m.sse.Publish(e.SubmitterID, sse.Event{
			Type:      sse.EventInquiryStatusChanged,
			InquiryID: e.InquiryID,
			Data:      map[string]string{"from": e.From, "to": e.To},
		})
		return nil

	case events.MatchingCompleted:
		m.sse.Publish(e.SubmitterID, sse.Event{
			Type:      sse.EventMatchingCompleted,
			InquiryID: e.InquiryID,
			Data:      map[string]int{"matchCount": e.MatchCount},
		})
		m.sse.PublishToStaff(sse.Event{
			Type:      sse.EventReviewQueueChanged,
			InquiryID: e.InquiryID,
		})
		return nil

	case events.InquiryMatched:
		return m.emailMatchFound(ctx, e)

	case events.InquiryResolved:
		return m.emailResolved(ctx, e)

	default:
		return nil
	}
}

func (m *Module) emailMatchFound(ctx context.Context, e events.InquiryMatched) error {
	address, err := m.profiles.GetEmail(ctx, e.SubmitterID)
	if err != nil {
		m.log.Warn("match email skipped, no profile",
			"user_id", e.SubmitterID.String(), "error", err.Error())
		return nil
	}

	inquiryURL := fmt.Sprintf("%s/inquiries/%s", m.appBaseURL, e.InquiryID)
	if err := m.sender.SendMatchFoundEmail(ctx, address, e.ItemName, inquiryURL); err != nil {
		m.log.Error("match email failed",
			"inquiry_id", e.InquiryID.String(), "error", err.Error())
	}
	return nil
}

func (m *Module) emailResolved(ctx context.Context, e events.InquiryResolved) error {
	address, err := m.profiles.GetEmail(ctx, e.SubmitterID)
	if err != nil {
		m.log.Warn("resolved email skipped, no profile",
			"user_id", e.SubmitterID.String(), "error", err.Error())
		return nil
	}

	if err := m.sender.SendInquiryResolvedEmail(ctx, address, e.InquiryTitle); err != nil {
		m.log.Error("resolved email failed",
			"inquiry_id", e.InquiryID.String(), "error", err.Error())
	}
	return nil
}

var _ apphttp.Module = (*Module)(nil)
var _ events.Handler = (*Module)(nil)
