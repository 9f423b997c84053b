package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillup/api/internal/middleware"
	"skillup/api/internal/models"
)

type feedbackRequest struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

type feedbackStatusRequest struct {
	Status models.FeedbackStatus `json:"status"`
}

// SubmitFeedback is open to anonymous callers.
func (h HandlerSet) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	feedback, err := h.feedback.Submit(c.Request.Context(), middleware.CurrentSession(c), req.Message, req.Category)
	if err != nil {
		h.respondError(c, err, "Failed to submit feedback")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": feedback})
}

func (h HandlerSet) ListFeedback(c *gin.Context) {
	items, err := h.feedback.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to get feedback")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": items})
}

func (h HandlerSet) UpdateFeedback(c *gin.Context) {
	var req feedbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	feedback, err := h.feedback.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err, "Failed to update feedback")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": feedback})
}
