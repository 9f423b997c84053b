package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillup/api/internal/service"
)

type adminUserRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
}

func (h HandlerSet) AdminStats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to get statistics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to get users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

func (h HandlerSet) AdminUpdateUser(c *gin.Context) {
	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	user, err := h.admin.UpdateUser(c.Request.Context(), c.Param("id"), service.AdminUserUpdate{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h HandlerSet) AdminDeleteUser(c *gin.Context) {
	if err := h.admin.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h HandlerSet) AdminAnalytics(c *gin.Context) {
	analytics, err := h.admin.Analytics(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to get analytics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analytics": analytics})
}
