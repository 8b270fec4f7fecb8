package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/service/pastures"
)

// PastureHandler exposes pastures and head transfers over HTTP.
type PastureHandler struct {
	svc    pastures.Repository
	logger *zap.Logger
}

// NewPastureHandler constructs the HTTP handler adapter.
func NewPastureHandler(svc pastures.Repository, logger *zap.Logger) *PastureHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PastureHandler{svc: svc, logger: logger}
}

// List returns every pasture.
func (h *PastureHandler) List(c *gin.Context) {
	all, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed listing pastures", err)
		return
	}
	c.JSON(http.StatusOK, all)
}

// Create adds a pasture.
func (h *PastureHandler) Create(c *gin.Context) {
	var candidate models.Pasture
	if err := c.ShouldBindJSON(&candidate); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), candidate)
	if err != nil {
		respondError(c, h.logger, "failed creating pasture", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update applies a direct field update.
func (h *PastureHandler) Update(c *gin.Context) {
	var patch models.PasturePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, "failed updating pasture", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type moveRequest struct {
	OriginID string `json:"originId" binding:"required"`
	DestID   string `json:"destId" binding:"required"`
	Amount   *int   `json:"amount" binding:"required"`
}

// Move transfers head between two pastures.
func (h *PastureHandler) Move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	res, err := h.svc.Move(c.Request.Context(), req.OriginID, req.DestID, *req.Amount)
	if err != nil {
		respondError(c, h.logger, "failed moving head", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
