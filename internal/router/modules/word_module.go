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

// WordModule wires the vocabulary routes, same gate pattern as psychologies.
type WordModule struct {
	Handler *handlers.WordHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewWordModule(h *handlers.WordHandler, jwt *helpers.JWTManager, users repository.UserRepository) *WordModule {
	return &WordModule{Handler: h, JWT: jwt, Users: users}
}

func (m *WordModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), nil)

	read := rg.Group("/words")
	read.Use(middleware.RequireConfirmed(m.JWT, m.Users), readLimiter)
	{
		read.GET("", m.Handler.List)
		read.GET("/random", m.Handler.Random)
		read.GET("/daily", m.Handler.Daily)
		read.GET("/:wid", m.Handler.Get)
	}

	write := rg.Group("/words")
	write.Use(middleware.RequireSuperuser(m.JWT, m.Users))
	{
		write.POST("", m.Handler.Create)
		write.PUT("/:wid", m.Handler.Update)
		write.DELETE("/:wid", m.Handler.Delete)
	}
}
