package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ischaojie/soulapi/internal/application"
	"github.com/ischaojie/soulapi/internal/domain/entity"
	"github.com/ischaojie/soulapi/internal/domain/repository"
	"github.com/ischaojie/soulapi/pkg/response"
	"github.com/ischaojie/soulapi/pkg/validation"
)

// PsychologyHandler serves psychology knowledge entries.
type PsychologyHandler struct {
	Svc    *application.PsychologyService
	Logger *logrus.Logger
}

func NewPsychologyHandler(svc *application.PsychologyService, logger *logrus.Logger) *PsychologyHandler {
	return &PsychologyHandler{Svc: svc, Logger: logger}
}

type createPsychologyRequest struct {
	Classify  string `json:"classify" binding:"required,classify"`
	Knowledge string `json:"knowledge" binding:"required"`
}

type updatePsychologyRequest struct {
	Classify  *string `json:"classify" binding:"omitempty,classify"`
	Knowledge *string `json:"knowledge"`
}

func psychologyView(p *entity.Psychology) gin.H {
	return gin.H{
		"id":         p.ID,
		"classify":   p.Classify,
		"knowledge":  p.Knowledge,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}

// List GET /api/v1/psychologies
func (h *PsychologyHandler) List(c *gin.Context) {
	skip, limit := pageParams(c)
	items, err := h.Svc.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.Logger.WithError(err).Error("list psychologies failed")
		response.Error[any](c, http.StatusInternalServerError, "list failed", nil)
		return
	}
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, psychologyView(&items[i]))
	}
	response.Success(c, http.StatusOK, out, "psychologies", gin.H{"skip": skip, "limit": limit})
}

// Random GET /api/v1/psychologies/random
func (h *PsychologyHandler) Random(c *gin.Context) {
	p, err := h.Svc.GetRandom(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "psychology knowledge not found", nil)
			return
		}
		h.Logger.WithError(err).Error("random psychology failed")
		response.Error[any](c, http.StatusInternalServerError, "random failed", nil)
		return
	}
	response.Success(c, http.StatusOK, psychologyView(p), "psychology", nil)
}

// Daily GET /api/v1/psychologies/daily
// The pick of the day is stable until midnight, server-local time.
func (h *PsychologyHandler) Daily(c *gin.Context) {
	p, err := h.Svc.GetDaily(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "psychology knowledge not found", nil)
			return
		}
		h.Logger.WithError(err).Error("daily psychology failed")
		response.Error[any](c, http.StatusInternalServerError, "daily failed", nil)
		return
	}
	response.Success(c, http.StatusOK, psychologyView(p), "psychology of the day", nil)
}

// Get GET /api/v1/psychologies/:pid
func (h *PsychologyHandler) Get(c *gin.Context) {
	pid, ok := parseID(c, "pid")
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "psychology knowledge not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get psychology failed")
		response.Error[any](c, http.StatusInternalServerError, "get failed", nil)
		return
	}
	response.Success(c, http.StatusOK, psychologyView(p), "psychology", nil)
}

// Create POST /api/v1/psychologies (superuser)
func (h *PsychologyHandler) Create(c *gin.Context) {
	var req createPsychologyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req.Classify, req.Knowledge)
	if err != nil {
		h.Logger.WithError(err).Error("create psychology failed")
		response.Error[any](c, http.StatusInternalServerError, "create failed", nil)
		return
	}
	response.Success(c, http.StatusOK, psychologyView(p), "psychology created", nil)
}

// Update PUT /api/v1/psychologies/:pid (superuser)
func (h *PsychologyHandler) Update(c *gin.Context) {
	pid, ok := parseID(c, "pid")
	if !ok {
		return
	}
	var req updatePsychologyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), pid, repository.PsychologyPatch{
		Classify:  req.Classify,
		Knowledge: req.Knowledge,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "psychology not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update psychology failed")
		response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, psychologyView(p), "psychology updated", nil)
}

// Delete DELETE /api/v1/psychologies/:pid (superuser)
func (h *PsychologyHandler) Delete(c *gin.Context) {
	pid, ok := parseID(c, "pid")
	if !ok {
		return
	}
	p, err := h.Svc.Remove(c.Request.Context(), pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "psychology not found", nil)
			return
		}
		h.Logger.WithError(err).Error("delete psychology failed")
		response.Error[any](c, http.StatusInternalServerError, "delete failed", nil)
		return
	}
	response.Success(c, http.StatusOK, psychologyView(p), "psychology deleted", nil)
}
