package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ischaojie/soulapi/internal/application"
	"github.com/ischaojie/soulapi/internal/domain/entity"
	"github.com/ischaojie/soulapi/pkg/helpers"
	"github.com/ischaojie/soulapi/pkg/response"
	"github.com/ischaojie/soulapi/pkg/validation"
)

// AuthHandler serves registration, login and account confirmation.
type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	FullName string `json:"full_name"`
}

type confirmRequest struct {
	Token string `json:"token" binding:"required"`
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":           u.ID,
		"email":        u.Email,
		"full_name":    u.FullName,
		"is_active":    u.IsActive,
		"is_superuser": u.IsSuperuser,
		"is_confirmed": u.IsConfirmed,
		"created_at":   u.CreatedAt,
		"updated_at":   u.UpdatedAt,
	}
}

// Register POST /api/v1/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, userView(u), "registered", nil)
	case errors.Is(err, application.ErrRegistrationClosed):
		response.Error[any](c, http.StatusForbidden, "forbidden for register", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusBadRequest, "user already exists", nil)
	default:
		h.Logger.WithError(err).Error("register failed")
		response.Error[any](c, http.StatusInternalServerError, "register failed", nil)
	}
}

// Login POST /api/v1/login
// Accepts form-encoded username/password; username carries the email.
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		response.Error[any](c, http.StatusBadRequest, "username and password are required", nil)
		return
	}
	token, _, err := h.Svc.Login(c.Request.Context(), email, password)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
		}, "login successful", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusBadRequest, "incorrect email or password", nil)
	case errors.Is(err, application.ErrInactiveUser):
		response.Error[any](c, http.StatusBadRequest, "inactive user", nil)
	case errors.Is(err, helpers.ErrMalformedHash):
		// Misconfiguration, not a bad login; already logged by the service.
		response.Error[any](c, http.StatusInternalServerError, "login unavailable", nil)
	default:
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
	}
}

// Confirm POST /api/v1/confirm
func (h *AuthHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	_, err := h.Svc.Confirm(c.Request.Context(), req.Token)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"msg": "Confirm user successfully"}, "confirmed", nil)
	case errors.Is(err, application.ErrInvalidToken):
		response.Error[any](c, http.StatusBadRequest, "invalid token", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrConfirmFailed):
		response.Error[any](c, http.StatusBadRequest, "confirm error", nil)
	default:
		h.Logger.WithError(err).Error("confirm failed")
		response.Error[any](c, http.StatusInternalServerError, "confirm failed", nil)
	}
}
