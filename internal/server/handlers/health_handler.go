package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/service/health"
)

// HealthHandler exposes health records over HTTP.
type HealthHandler struct {
	svc    health.Repository
	logger *zap.Logger
}

// NewHealthHandler constructs the HTTP handler adapter.
func NewHealthHandler(svc health.Repository, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{svc: svc, logger: logger}
}

// List returns health records, filtered by the animalId query parameter when set.
func (h *HealthHandler) List(c *gin.Context) {
	var (
		records []models.HealthRecord
		err     error
	)
	if animalID := c.Query("animalId"); animalID != "" {
		records, err = h.svc.ListByAnimal(c.Request.Context(), animalID)
	} else {
		records, err = h.svc.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.logger, "failed listing health records", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Create schedules or records a health event.
func (h *HealthHandler) Create(c *gin.Context) {
	var candidate models.HealthRecord
	if err := c.ShouldBindJSON(&candidate); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), candidate)
	if err != nil {
		respondError(c, h.logger, "failed creating health record", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type statusRequest struct {
	Status models.HealthStatus `json:"status" binding:"required"`
}

// UpdateStatus changes the status of a record.
func (h *HealthHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	updated, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, "failed updating health status", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
