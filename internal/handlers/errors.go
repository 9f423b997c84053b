package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillup/api/internal/service"
)

// respondError maps a service error to its status. Anything untyped is logged
// and answered with fallback, keeping internals out of the response.
func (h HandlerSet) respondError(c *gin.Context, err error, fallback string) {
	se, ok := service.AsError(err)
	if !ok {
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
		return
	}

	switch se.Kind {
	case service.KindValidation, service.KindConflict:
		c.JSON(http.StatusBadRequest, gin.H{"error": se.Message})
	case service.KindAuth:
		c.JSON(http.StatusUnauthorized, gin.H{"error": se.Message})
	case service.KindAuthorization:
		c.JSON(http.StatusForbidden, gin.H{"error": se.Message})
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": se.Message})
	case service.KindGeneration, service.KindTruncated, service.KindUpstream:
		h.log.Error().Err(se.Err).Str("kind", string(se.Kind)).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": se.Message})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}
