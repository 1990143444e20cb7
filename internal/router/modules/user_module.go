package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ischaojie/soulapi/internal/container"
	"github.com/ischaojie/soulapi/internal/domain/repository"
	handlers "github.com/ischaojie/soulapi/internal/interface/http"
	"github.com/ischaojie/soulapi/internal/interface/middleware"
	"github.com/ischaojie/soulapi/pkg/helpers"
)

// UserModule wires profile and account administration routes.
// Self-scope: GET/PUT /api/v1/users/me, the password reset pair.
// Admin scope: POST/GET /api/v1/users, PUT /api/v1/users/:uid.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, users repository.UserRepository) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	resetLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByUser(), nil)

	me := rg.Group("/users")
	me.Use(middleware.RequireActive(m.JWT, m.Users))
	{
		me.GET("/me", m.Handler.Me)
		me.PUT("/me", m.Handler.UpdateMe)
		me.POST("/reset-password", resetLimiter, m.Handler.ResetPassword)
		me.POST("/confirm-password", m.Handler.ConfirmPassword)
	}

	admin := rg.Group("/users")
	admin.Use(middleware.RequireSuperuser(m.JWT, m.Users))
	{
		admin.POST("", m.Handler.Create)
		admin.GET("", m.Handler.List)
		admin.PUT("/:uid", m.Handler.Update)
	}
}
