package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/service/animals"
	"github.com/mamadbah2/herdbook/pkg/clients/anthropic"
)

// AnimalHandler exposes the animal repository over HTTP.
type AnimalHandler struct {
	svc       animals.Repository
	assistant anthropic.Client
	logger    *zap.Logger
}

// NewAnimalHandler constructs the HTTP handler adapter. assistant may be nil.
func NewAnimalHandler(svc animals.Repository, assistant anthropic.Client, logger *zap.Logger) *AnimalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnimalHandler{svc: svc, assistant: assistant, logger: logger}
}

// List returns the herd.
func (h *AnimalHandler) List(c *gin.Context) {
	all, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed listing animals", err)
		return
	}
	c.JSON(http.StatusOK, all)
}

// Get returns one animal.
func (h *AnimalHandler) Get(c *gin.Context) {
	a, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "failed fetching animal", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Create registers a new animal.
func (h *AnimalHandler) Create(c *gin.Context) {
	var candidate models.Animal
	if err := c.ShouldBindJSON(&candidate); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), candidate)
	if err != nil {
		respondError(c, h.logger, "failed creating animal", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update applies a partial update.
func (h *AnimalHandler) Update(c *gin.Context) {
	var patch models.AnimalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, "failed updating animal", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes an animal.
func (h *AnimalHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "failed deleting animal", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type visionRequest struct {
	MediaType string `json:"mediaType"`
	Image     string `json:"image" binding:"required"`
}

type visionResponse struct {
	Analysis models.VisionResult `json:"analysis"`
	Animal   models.Animal       `json:"animal"`
}

// Vision analyses a photo with the assistant and merges the result into the animal.
func (h *AnimalHandler) Vision(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant disabled"})
		return
	}
	var req visionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	id := c.Param("id")
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "failed fetching animal", err)
		return
	}

	analysis, err := h.assistant.AnalyzeImage(c.Request.Context(), req.MediaType, req.Image)
	if err != nil {
		h.logger.Error("image analysis failed", zap.String("animal_id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "image analysis failed"})
		return
	}

	updated, err := h.svc.ApplyVisionResult(c.Request.Context(), id, analysis)
	if err != nil {
		respondError(c, h.logger, "failed applying image analysis", err)
		return
	}
	c.JSON(http.StatusOK, visionResponse{Analysis: analysis, Animal: updated})
}
