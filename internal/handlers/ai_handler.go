package handlers

import (
	"net/http"

	"go-quote-desk/internal/ai"

	"github.com/gin-gonic/gin"
)

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

// --- POST: /api/assistant ---
func AskAI(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}

	if deps.GeminiAPIKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured (GEMINI_API_KEY)", "code": "assistant_disabled"})
		return
	}

	response, err := ai.RunAgent(c.Request.Context(), req.Message, deps.GeminiAPIKey)
	if err != nil {
		failWith(c, err, "operation_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": response})
}
