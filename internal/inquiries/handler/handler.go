package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lostfound_backend/internal/inquiries/service"
	"lostfound_backend/internal/inquiries/transport"
	"lostfound_backend/platform/httpkit"
	"lostfound_backend/platform/validator"
)

// Handler handles HTTP requests for inquiries.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid inquiry id"
)

// New creates a new inquiries handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Submit creates a new inquiry from a multipart form.
// POST /api/v1/inquiries
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitInquiryRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	form, err := c.MultipartForm()
	if err != nil && err != http.ErrNotMultipart {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	params := service.SubmitParams{
		UserID:                 identity.UserID(),
		Title:                  req.Title,
		Description:            req.Description,
		Category:               req.Category,
		Color:                  req.Color,
		Brand:                  req.Brand,
		DistinguishingFeatures: req.DistinguishingFeatures,
		LocationLost:           req.LocationLost,
		DateLost:               req.DateLost,
	}
	if form != nil {
		params.Images = form.File["images"]
	}

	result, err := h.svc.Submit(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToInquiryResponse(result))
}

// ListMine retrieves the caller's inquiries.
// GET /api/v1/inquiries
func (h *Handler) ListMine(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.ListMine(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToInquiryResponses(result))
}

// GetMine retrieves one of the caller's inquiries.
// GET /api/v1/inquiries/:id
func (h *Handler) GetMine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.GetMine(c.Request.Context(), identity.UserID(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToInquiryResponse(result))
}

// GetMatchedItem retrieves the item behind the inquiry's confirmed match.
// GET /api/v1/inquiries/:id/matched-item
func (h *Handler) GetMatchedItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.GetMatchedItem(c.Request.Context(), identity.UserID(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToMatchedItemResponse(result))
}

// ConfirmMatch accepts the matched item and resolves the inquiry.
// POST /api/v1/inquiries/:id/confirm
func (h *Handler) ConfirmMatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.ConfirmMatch(c.Request.Context(), identity.UserID(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "resolved"})
}

// RejectMatch declines the matched item.
// POST /api/v1/inquiries/:id/reject
func (h *Handler) RejectMatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.RejectMatch(c.Request.Context(), identity.UserID(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "rejected"})
}

// Overview returns dashboard counters.
// GET /api/v1/staff/overview
func (h *Handler) Overview(c *gin.Context) {
	stats, err := h.svc.Overview(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.OverviewResponse{
		Submitted:      stats.Inquiries.Submitted,
		UnderReview:    stats.Inquiries.UnderReview,
		Matched:        stats.Inquiries.Matched,
		Resolved:       stats.Inquiries.Resolved,
		Rejected:       stats.Inquiries.Rejected,
		TotalItems:     stats.TotalItems,
		UnclaimedItems: stats.UnclaimedItems,
	})
}
