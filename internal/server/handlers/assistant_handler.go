package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/service/reporting"
	"github.com/mamadbah2/herdbook/pkg/clients/anthropic"
)

// Summarizer produces the farm summary.
type Summarizer interface {
	Summary(ctx context.Context) (reporting.Summary, error)
}

// InsightsHandler serves the summary and the assistant's advice.
type InsightsHandler struct {
	summarizer Summarizer
	assistant  anthropic.Client
	logger     *zap.Logger
}

// NewInsightsHandler constructs the HTTP handler adapter. assistant may be nil.
func NewInsightsHandler(summarizer Summarizer, assistant anthropic.Client, logger *zap.Logger) *InsightsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsHandler{summarizer: summarizer, assistant: assistant, logger: logger}
}

// Summary returns the aggregate farm view.
func (h *InsightsHandler) Summary(c *gin.Context) {
	sum, err := h.summarizer.Summary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed computing summary", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type adviceRequest struct {
	Query   string `json:"query" binding:"required"`
	Context string `json:"context"`
}

// Advice forwards a question to the assistant.
func (h *InsightsHandler) Advice(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant disabled"})
		return
	}
	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	answer, err := h.assistant.Advise(c.Request.Context(), req.Query, req.Context)
	if err != nil {
		h.logger.Error("assistant advice failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
