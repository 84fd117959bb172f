package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lostfound_backend/internal/inventory/repository"
	"lostfound_backend/internal/inventory/service"
	"lostfound_backend/internal/inventory/transport"
	"lostfound_backend/platform/httpkit"
	"lostfound_backend/platform/validator"
)

// Handler handles HTTP requests for the inventory.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid item id"
)

// New creates a new inventory handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create logs a found item from a multipart form.
// POST /api/v1/staff/items
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateItemRequest
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
	params := service.CreateParams{
		Name:                   req.Name,
		Description:            req.Description,
		Category:               req.Category,
		Color:                  req.Color,
		Brand:                  req.Brand,
		DistinguishingFeatures: req.DistinguishingFeatures,
		LocationFound:          req.LocationFound,
		DateFound:              req.DateFound,
		AddedBy:                identity.UserID(),
	}
	if form != nil {
		params.Images = form.File["images"]
	}

	item, err := h.svc.Create(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToItemResponse(item))
}

// List retrieves inventory items.
// GET /api/v1/staff/items
func (h *Handler) List(c *gin.Context) {
	var query transport.ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	items, err := h.svc.List(c.Request.Context(), repository.ListFilters{
		Category: query.Category,
		Claimed:  query.Claimed,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToItemResponses(items))
}

// Get retrieves a single item.
// GET /api/v1/staff/items/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	item, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToItemResponse(item))
}

// Update edits an item.
// PUT /api/v1/staff/items/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var req transport.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	item, err := h.svc.Update(c.Request.Context(), id, service.UpdateParams{
		Name:                   req.Name,
		Description:            req.Description,
		Category:               req.Category,
		Color:                  req.Color,
		Brand:                  req.Brand,
		DistinguishingFeatures: req.DistinguishingFeatures,
		LocationFound:          req.LocationFound,
		DateFound:              req.DateFound,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToItemResponse(item))
}

// AddImages uploads additional photos onto an item.
// POST /api/v1/staff/items/:id/images
func (h *Handler) AddImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.AddImages(c.Request.Context(), id, form.File["images"]); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "ok"})
}

// Delete removes an item from the inventory.
// DELETE /api/v1/staff/items/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "deleted"})
}
