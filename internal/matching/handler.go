package matching

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lostfound_backend/platform/httpkit"
)

// Handler exposes a synchronous matching run for staff. The normal path is
// the queued job fired on submission; this endpoint re-runs matching after
// the inventory has changed.
type Handler struct {
	svc *Service
}

// NewHandler creates the matching handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type runRequest struct {
	InquiryID uuid.UUID `json:"inquiryId" binding:"required"`
}

type runResponse struct {
	MatchCount int               `json:"matchCount"`
	Matches    []ParsedCandidate `json:"matches"`
	Degraded   bool              `json:"degraded,omitempty"`
}

// Run executes a matching run for one inquiry.
// POST /api/v1/staff/matching/run
func (h *Handler) Run(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	result, err := h.svc.Run(c.Request.Context(), req.InquiryID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, runResponse{
		MatchCount: result.MatchCount,
		Matches:    result.Matches,
		Degraded:   result.Degraded,
	})
}
