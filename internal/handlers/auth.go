package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillup/api/internal/middleware"
	"skillup/api/internal/service"
)

type signUpRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func (h HandlerSet) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	result, err := h.auth.SignUp(c.Request.Context(), service.SignUpInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"session_token": result.SessionToken,
		"user":          result.User.Summary(),
	})
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.respondError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"session_token": result.SessionToken,
		"user":          result.User.Summary(),
	})
}

func (h HandlerSet) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	result, err := h.auth.AdminLogin(c.Request.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.respondError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"session_token": result.SessionToken,
		"admin": adminResponse{
			ID:       result.User.ID,
			Email:    result.User.Email,
			FullName: result.User.FullName,
		},
	})
}

// Session reports the caller's session. An absent or stale token is not an error.
func (h HandlerSet) Session(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if session == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "session": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

// Logout always succeeds so the client clears its token regardless.
func (h HandlerSet) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), c.GetHeader(middleware.SessionHeader)); err != nil {
		h.log.Error().Err(err).Msg("delete session failed")
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
