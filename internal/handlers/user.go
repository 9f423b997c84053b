package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillup/api/internal/middleware"
	"skillup/api/internal/service"
)

type updateProfileRequest struct {
	FullName        *string `json:"full_name"`
	Email           *string `json:"email"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
}

type progressRequest struct {
	ModuleID           string  `json:"moduleId"`
	ModuleName         string  `json:"moduleName"`
	Completed          bool    `json:"completed"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

func (h HandlerSet) GetProfile(c *gin.Context) {
	session := middleware.CurrentSession(c)

	profile, err := h.profile.GetProfile(c.Request.Context(), *session)
	if err != nil {
		h.respondError(c, err, "Failed to get profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	summary, err := h.profile.UpdateProfile(c.Request.Context(), *session, service.UpdateProfileInput{
		FullName:        req.FullName,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": summary})
}

func (h HandlerSet) UpdateProgress(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	progress, err := h.progress.UpdateProgress(c.Request.Context(), session.UserID, service.ProgressInput{
		ModuleID:           req.ModuleID,
		ModuleName:         req.ModuleName,
		Completed:          req.Completed,
		ProgressPercentage: req.ProgressPercentage,
	})
	if err != nil {
		h.respondError(c, err, "Failed to update progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "progress": progress})
}

func (h HandlerSet) ListProgress(c *gin.Context) {
	session := middleware.CurrentSession(c)

	progress, err := h.progress.ListProgress(c.Request.Context(), session.UserID)
	if err != nil {
		h.respondError(c, err, "Failed to get modules")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "progress": progress})
}
