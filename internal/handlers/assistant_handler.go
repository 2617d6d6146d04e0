package handlers

import (
	"net/http"
	"os"

	"tailorshop/internal/ai"

	"github.com/gin-gonic/gin"
)

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

// AskAssistant forwards a question to the Gemini-backed shop assistant.
func AskAssistant(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message is required"})
		return
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server missing Gemini API key"})
		return
	}

	response, err := ai.RunAssistant(req.Message, apiKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Assistant failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": response})
}
