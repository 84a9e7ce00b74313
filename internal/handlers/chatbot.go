package handlers

import (
	"errors"
	"net/http"

	"hospital-services/internal/triage"
	"hospital-services/internal/utils"

	"github.com/gin-gonic/gin"
)

// ChatbotHandler handles the symptom-triage dialogue endpoints.
type ChatbotHandler struct {
	Engine *triage.Engine
}

// NewChatbotHandler creates a new ChatbotHandler.
func NewChatbotHandler(engine *triage.Engine) *ChatbotHandler {
	return &ChatbotHandler{Engine: engine}
}

// StartConversation opens a new triage conversation and returns its session
// id with the greeting.
func (h *ChatbotHandler) StartConversation(c *gin.Context) {
	sessionID, reply := h.Engine.Start()
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"message":    reply.Message,
	})
}

// RespondRequest represents one user turn in a conversation.
type RespondRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Input     string `json:"input"`
}

// Respond advances a conversation by one turn.
func (h *ChatbotHandler) Respond(c *gin.Context) {
	var req RespondRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	reply, err := h.Engine.Respond(req.SessionID, req.Input)
	if err != nil {
		if errors.Is(err, triage.ErrNoSession) {
			utils.BadRequest(c, "Please start the conversation first.")
		} else {
			utils.InternalServerError(c, "Something went wrong.")
		}
		return
	}

	c.JSON(http.StatusOK, reply)
}
