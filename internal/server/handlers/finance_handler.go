package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/service/finance"
)

// FinanceHandler exposes the ledger over HTTP.
type FinanceHandler struct {
	svc    finance.Repository
	logger *zap.Logger
}

// NewFinanceHandler constructs the HTTP handler adapter.
func NewFinanceHandler(svc finance.Repository, logger *zap.Logger) *FinanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceHandler{svc: svc, logger: logger}
}

// List returns the ledger.
func (h *FinanceHandler) List(c *gin.Context) {
	all, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed listing ledger", err)
		return
	}
	c.JSON(http.StatusOK, all)
}

// Create appends a ledger entry.
func (h *FinanceHandler) Create(c *gin.Context) {
	var candidate models.FinancialRecord
	if err := c.ShouldBindJSON(&candidate); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), candidate)
	if err != nil {
		respondError(c, h.logger, "failed creating ledger entry", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Balance returns income minus expense.
func (h *FinanceHandler) Balance(c *gin.Context) {
	balance, err := h.svc.Balance(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed computing balance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
