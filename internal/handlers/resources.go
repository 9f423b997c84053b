package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillup/api/internal/service"
)

type resourceRequest struct {
	Name      *string  `json:"name"`
	Type      *string  `json:"type"`
	Address   *string  `json:"address"`
	Contact   *string  `json:"contact"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r resourceRequest) input() service.ResourceInput {
	return service.ResourceInput{
		Name:      r.Name,
		Type:      r.Type,
		Address:   r.Address,
		Contact:   r.Contact,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

// ListResources is public.
func (h HandlerSet) ListResources(c *gin.Context) {
	items, err := h.resources.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to get resources")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "resources": items})
}

func (h HandlerSet) CreateResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	resource, err := h.resources.Create(c.Request.Context(), req.input())
	if err != nil {
		h.respondError(c, err, "Failed to add resource")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "resource": resource})
}

func (h HandlerSet) UpdateResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	resource, err := h.resources.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		h.respondError(c, err, "Failed to update resource")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "resource": resource})
}

func (h HandlerSet) DeleteResource(c *gin.Context) {
	if err := h.resources.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete resource")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
