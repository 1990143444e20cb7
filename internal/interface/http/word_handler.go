package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ischaojie/soulapi/internal/application"
	"github.com/ischaojie/soulapi/internal/domain/entity"
	"github.com/ischaojie/soulapi/internal/domain/repository"
	"github.com/ischaojie/soulapi/pkg/response"
	"github.com/ischaojie/soulapi/pkg/validation"
)

// WordHandler serves vocabulary entries.
type WordHandler struct {
	Svc    *application.WordService
	Logger *logrus.Logger
}

func NewWordHandler(svc *application.WordService, logger *logrus.Logger) *WordHandler {
	return &WordHandler{Svc: svc, Logger: logger}
}

type createWordRequest struct {
	Origin        string `json:"origin" binding:"required"`
	Pronunciation string `json:"pronunciation"`
	Translation   string `json:"translation"`
}

type updateWordRequest struct {
	Origin        *string `json:"origin"`
	Pronunciation *string `json:"pronunciation"`
	Translation   *string `json:"translation"`
}

func wordView(w *entity.Word) gin.H {
	return gin.H{
		"id":            w.ID,
		"origin":        w.Origin,
		"pronunciation": w.Pronunciation,
		"translation":   w.Translation,
		"created_at":    w.CreatedAt,
		"updated_at":    w.UpdatedAt,
	}
}

// List GET /api/v1/words
func (h *WordHandler) List(c *gin.Context) {
	skip, limit := pageParams(c)
	items, err := h.Svc.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.Logger.WithError(err).Error("list words failed")
		response.Error[any](c, http.StatusInternalServerError, "list failed", nil)
		return
	}
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, wordView(&items[i]))
	}
	response.Success(c, http.StatusOK, out, "words", gin.H{"skip": skip, "limit": limit})
}

// Random GET /api/v1/words/random
func (h *WordHandler) Random(c *gin.Context) {
	w, err := h.Svc.GetRandom(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "word not found", nil)
			return
		}
		h.Logger.WithError(err).Error("random word failed")
		response.Error[any](c, http.StatusInternalServerError, "random failed", nil)
		return
	}
	response.Success(c, http.StatusOK, wordView(w), "word", nil)
}

// Daily GET /api/v1/words/daily
func (h *WordHandler) Daily(c *gin.Context) {
	w, err := h.Svc.GetDaily(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "word not found", nil)
			return
		}
		h.Logger.WithError(err).Error("daily word failed")
		response.Error[any](c, http.StatusInternalServerError, "daily failed", nil)
		return
	}
	response.Success(c, http.StatusOK, wordView(w), "word of the day", nil)
}

// Get GET /api/v1/words/:wid
func (h *WordHandler) Get(c *gin.Context) {
	wid, ok := parseID(c, "wid")
	if !ok {
		return
	}
	w, err := h.Svc.Get(c.Request.Context(), wid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "word not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get word failed")
		response.Error[any](c, http.StatusInternalServerError, "get failed", nil)
		return
	}
	response.Success(c, http.StatusOK, wordView(w), "word", nil)
}

// Create POST /api/v1/words (superuser)
func (h *WordHandler) Create(c *gin.Context) {
	var req createWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	w, err := h.Svc.Create(c.Request.Context(), req.Origin, req.Pronunciation, req.Translation)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			response.Error[any](c, http.StatusBadRequest, "word already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("create word failed")
		response.Error[any](c, http.StatusInternalServerError, "create failed", nil)
		return
	}
	response.Success(c, http.StatusOK, wordView(w), "word created", nil)
}

// Update PUT /api/v1/words/:wid (superuser)
func (h *WordHandler) Update(c *gin.Context) {
	wid, ok := parseID(c, "wid")
	if !ok {
		return
	}
	var req updateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	w, err := h.Svc.Update(c.Request.Context(), wid, repository.WordPatch{
		Origin:        req.Origin,
		Pronunciation: req.Pronunciation,
		Translation:   req.Translation,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Error[any](c, http.StatusNotFound, "word not found", nil)
		case errors.Is(err, repository.ErrConflict):
			response.Error[any](c, http.StatusBadRequest, "word already exists", nil)
		default:
			h.Logger.WithError(err).Error("update word failed")
			response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, wordView(w), "word updated", nil)
}

// Delete DELETE /api/v1/words/:wid (superuser)
func (h *WordHandler) Delete(c *gin.Context) {
	wid, ok := parseID(c, "wid")
	if !ok {
		return
	}
	w, err := h.Svc.Remove(c.Request.Context(), wid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "word not found", nil)
			return
		}
		h.Logger.WithError(err).Error("delete word failed")
		response.Error[any](c, http.StatusInternalServerError, "delete failed", nil)
		return
	}
	response.Success(c, http.StatusOK, wordView(w), "word deleted", nil)
}
