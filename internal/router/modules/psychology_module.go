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

// PsychologyModule wires the psychology content routes.
// Reads require a confirmed account; writes require a superuser.
type PsychologyModule struct {
	Handler *handlers.PsychologyHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewPsychologyModule(h *handlers.PsychologyHandler, jwt *helpers.JWTManager, users repository.UserRepository) *PsychologyModule {
	return &PsychologyModule{Handler: h, JWT: jwt, Users: users}
}

func (m *PsychologyModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), nil)

	read := rg.Group("/psychologies")
	read.Use(middleware.RequireConfirmed(m.JWT, m.Users), readLimiter)
	{
		read.GET("", m.Handler.List)
		read.GET("/random", m.Handler.Random)
		read.GET("/daily", m.Handler.Daily)
		read.GET("/:pid", m.Handler.Get)
	}

	write := rg.Group("/psychologies")
	write.Use(middleware.RequireSuperuser(m.JWT, m.Users))
	{
		write.POST("", m.Handler.Create)
		write.PUT("/:pid", m.Handler.Update)
		write.DELETE("/:pid", m.Handler.Delete)
	}
}
