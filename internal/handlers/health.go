package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status      string `json:"status"`
	Storage     string `json:"storage"`
	Environment string `json:"environment"`
}

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	storageStatus := "ok"
	if err := h.store.Ping(ctx); err != nil {
		storageStatus = "error"
		h.log.Error().Err(err).Str("driver", string(h.cfg.Storage.Driver)).Msg("storage ping failed")
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Storage:     storageStatus,
		Environment: h.cfg.Environment,
	})
}

// SeedAdmin creates the default admin account once.
func (h HandlerSet) SeedAdmin(c *gin.Context) {
	result, err := h.auth.SeedAdmin(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to create admin")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Admin account created",
		"credentials": gin.H{
			"email":    result.Email,
			"password": result.Password,
		},
	})
}
