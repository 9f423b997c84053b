package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillup/api/internal/middleware"
	"skillup/api/internal/models"
)

type analyzeRequest struct {
	Responses []models.AssessmentResponse `json:"responses"`
}

type modulesRequest struct {
	CareerPath    string `json:"careerPath"`
	HasAssessment bool   `json:"hasAssessment"`
}

type lessonRequest struct {
	ModuleTitle       string `json:"moduleTitle"`
	ModuleDescription string `json:"moduleDescription"`
}

func (h HandlerSet) GenerateAssessment(c *gin.Context) {
	questions, err := h.content.GenerateAssessment(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to generate assessment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "questions": questions})
}

func (h HandlerSet) AnalyzeAssessment(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid responses"})
		return
	}

	analysis, err := h.content.AnalyzeAssessment(c.Request.Context(), session.UserID, req.Responses)
	if err != nil {
		h.respondError(c, err, "Failed to analyze assessment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

func (h HandlerSet) AssessmentResults(c *gin.Context) {
	session := middleware.CurrentSession(c)

	assessment, err := h.content.GetAssessment(c.Request.Context(), session.UserID)
	if err != nil {
		h.respondError(c, err, "Failed to get assessment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assessment": assessment})
}

func (h HandlerSet) GenerateModules(c *gin.Context) {
	var req modulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	modules, err := h.content.GenerateModules(c.Request.Context(), req.CareerPath, req.HasAssessment)
	if err != nil {
		h.respondError(c, err, "Failed to generate modules")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "modules": modules})
}

func (h HandlerSet) GenerateLesson(c *gin.Context) {
	var req lessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	lesson, err := h.content.GenerateLesson(c.Request.Context(), req.ModuleTitle, req.ModuleDescription)
	if err != nil {
		h.respondError(c, err, "Failed to generate lesson")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "lesson": lesson})
}
