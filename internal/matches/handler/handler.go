package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lostfound_backend/internal/matches/service"
	"lostfound_backend/internal/matches/transport"
	"lostfound_backend/platform/httpkit"
)

// Handler handles HTTP requests for the match review workflow.
type Handler struct {
	svc *service.Service
}

const msgInvalidID = "invalid id"

// New creates a new matches handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ReviewQueue lists inquiries with pending candidates.
// GET /api/v1/staff/review-queue
func (h *Handler) ReviewQueue(c *gin.Context) {
	entries, err := h.svc.ListReviewQueue(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToReviewQueueResponse(entries))
}

// Candidates lists an inquiry's pending candidates with their items.
// GET /api/v1/staff/inquiries/:id/candidates
func (h *Handler) Candidates(c *gin.Context) {
	inquiryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	candidates, err := h.svc.CandidatesForInquiry(c.Request.Context(), inquiryID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToCandidateResponses(candidates))
}

// Approve confirms a candidate as the inquiry's match.
// POST /api/v1/staff/candidates/:id/approve
func (h *Handler) Approve(c *gin.Context) {
	candidateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.Approve(c.Request.Context(), identity.UserID(), candidateID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "matched"})
}

// NoMatch closes an inquiry without a match.
// POST /api/v1/staff/inquiries/:id/no-match
func (h *Handler) NoMatch(c *gin.Context) {
	inquiryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.svc.NoMatch(c.Request.Context(), identity.UserID(), inquiryID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "rejected"})
}
