package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/service/commands"
)

// CommandHandler accepts quick-entry text commands.
type CommandHandler struct {
	dispatcher commands.Dispatcher
	logger     *zap.Logger
}

// NewCommandHandler constructs the HTTP handler adapter.
func NewCommandHandler(dispatcher commands.Dispatcher, logger *zap.Logger) *CommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandHandler{dispatcher: dispatcher, logger: logger}
}

type commandRequest struct {
	Text   string `json:"text" binding:"required"`
	Sender string `json:"sender"`
}

// Handle parses and executes one command.
func (h *CommandHandler) Handle(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	cmd := models.ParseCommand(req.Text)
	reply, err := h.dispatcher.HandleCommand(c.Request.Context(), cmd, req.Sender)
	if err != nil {
		respondError(c, h.logger, "command failed", err)
		return
	}

	h.logger.Info("command handled", zap.String("command", string(cmd.Type)), zap.String("sender", req.Sender))
	c.JSON(http.StatusOK, gin.H{"command": cmd.Type, "reply": reply})
}
