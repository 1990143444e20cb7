package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ischaojie/soulapi/internal/application"
	"github.com/ischaojie/soulapi/internal/interface/middleware"
	"github.com/ischaojie/soulapi/pkg/response"
	"github.com/ischaojie/soulapi/pkg/validation"
)

// UserHandler serves the profile endpoints, the password reset flow and the
// superuser account administration.
type UserHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.AuthService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateMeRequest struct {
	FullName *string `json:"full_name"`
	Password *string `json:"password" binding:"omitempty,pwd"`
}

type confirmPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

type createUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	FullName    string `json:"full_name"`
	IsSuperuser bool   `json:"is_superuser"`
}

type updateUserRequest struct {
	FullName    *string `json:"full_name"`
	Password    *string `json:"password" binding:"omitempty,pwd"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
	IsConfirmed *bool   `json:"is_confirmed"`
}

func pageParams(c *gin.Context) (int, int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}
	return skip, limit
}

// Me GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	response.Success(c, http.StatusOK, userView(u), "current user", nil)
}

// UpdateMe PUT /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	updated, err := h.Svc.UpdateUser(c.Request.Context(), u.ID, application.UserUpdateInput{
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("update profile failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, userView(updated), "profile updated", nil)
}

// ResetPassword POST /api/v1/users/reset-password
// Enqueues a reset email for the authenticated user.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	u := middleware.CurrentUser(c)
	h.Svc.RequestPasswordReset(c.Request.Context(), u)
	response.Success(c, http.StatusOK, gin.H{"msg": "Password reset email sent"}, "reset email sent", nil)
}

// ConfirmPassword POST /api/v1/users/confirm-password
func (h *UserHandler) ConfirmPassword(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var req confirmPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.ConfirmPasswordReset(c.Request.Context(), u, req.Token, req.Password)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"msg": "Password reset successfully"}, "password updated", nil)
	case errors.Is(err, application.ErrInvalidToken):
		response.Error[any](c, http.StatusBadRequest, "invalid token", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrIdentityMismatch):
		response.Error[any](c, http.StatusForbidden, "mismatched identity", nil)
	default:
		h.Logger.WithError(err).Error("password reset failed")
		response.Error[any](c, http.StatusInternalServerError, "password reset failed", nil)
	}
}

// Create POST /api/v1/users (superuser)
// Administrative creation; the account is pre-confirmed.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), req.Email, req.Password, req.FullName, req.IsSuperuser)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, userView(u), "user created", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusBadRequest, "user already exists", nil)
	default:
		h.Logger.WithError(err).Error("create user failed")
		response.Error[any](c, http.StatusInternalServerError, "create user failed", nil)
	}
}

// Update PUT /api/v1/users/:uid (superuser)
func (h *UserHandler) Update(c *gin.Context) {
	uid, err := strconv.ParseInt(c.Param("uid"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), uid, application.UserUpdateInput{
		FullName:    req.FullName,
		Password:    req.Password,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
		IsConfirmed: req.IsConfirmed,
	})
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, userView(u), "user updated", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	default:
		h.Logger.WithError(err).WithField("user_id", uid).Error("update user failed")
		response.Error[any](c, http.StatusInternalServerError, "update user failed", nil)
	}
}

// List GET /api/v1/users (superuser)
func (h *UserHandler) List(c *gin.Context) {
	skip, limit := pageParams(c)
	users, err := h.Svc.ListUsers(c.Request.Context(), skip, limit)
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "list users failed", nil)
		return
	}
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userView(&users[i]))
	}
	response.Success(c, http.StatusOK, out, "users", gin.H{"skip": skip, "limit": limit})
}
