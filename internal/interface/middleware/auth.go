package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ischaojie/soulapi/internal/domain/entity"
	"github.com/ischaojie/soulapi/internal/domain/repository"
	"github.com/ischaojie/soulapi/pkg/helpers"
	"github.com/ischaojie/soulapi/pkg/response"
)

const CtxUserKey = "currentUser"

// CurrentUser returns the user resolved by RequireAuth, or nil outside an
// authenticated route.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(CtxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth verifies the bearer token and loads the subject's user record
// into the Gin context. Token failures abort with 401; a subject with no
// matching user aborts with 404.
func RequireAuth(jwt *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		sub, err := jwt.Parse(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, helpers.ErrExpiredToken) {
				msg = "token expired"
			}
			response.AbortError(c, http.StatusUnauthorized, msg, nil)
			return
		}
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid token", nil)
			return
		}
		u, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.AbortError(c, http.StatusNotFound, "user not found", nil)
				return
			}
			response.AbortError(c, http.StatusInternalServerError, "failed to load user", nil)
			return
		}
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// RequireActive builds on RequireAuth and rejects inactive accounts.
func RequireActive(jwt *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	authn := RequireAuth(jwt, users)
	return func(c *gin.Context) {
		authn(c)
		if c.IsAborted() {
			return
		}
		if u := CurrentUser(c); u == nil || !u.IsActive {
			response.AbortError(c, http.StatusForbidden, "inactive user", nil)
		}
	}
}

// RequireConfirmed builds on RequireActive and rejects accounts that never
// redeemed their confirmation email.
func RequireConfirmed(jwt *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	active := RequireActive(jwt, users)
	return func(c *gin.Context) {
		active(c)
		if c.IsAborted() {
			return
		}
		if u := CurrentUser(c); u == nil || !u.IsConfirmed {
			response.AbortError(c, http.StatusForbidden, "user not confirmed", nil)
		}
	}
}

// RequireSuperuser builds on RequireAuth and rejects non-superusers.
func RequireSuperuser(jwt *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	authn := RequireAuth(jwt, users)
	return func(c *gin.Context) {
		authn(c)
		if c.IsAborted() {
			return
		}
		if u := CurrentUser(c); u == nil || !u.IsSuperuser {
			response.AbortError(c, http.StatusForbidden, "insufficient privileges", nil)
		}
	}
}
