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

// UtilsModule wires the diagnostic routes.
type UtilsModule struct {
	Handler *handlers.UtilsHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewUtilsModule(h *handlers.UtilsHandler, jwt *helpers.JWTManager, users repository.UserRepository) *UtilsModule {
	return &UtilsModule{Handler: h, JWT: jwt, Users: users}
}

func (m *UtilsModule) Register(rg *gin.RouterGroup) {
	testEmailLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByUser(), nil)

	utils := rg.Group("/utils")
	{
		utils.POST("/test-token", middleware.RequireAuth(m.JWT, m.Users), m.Handler.TestToken)
		utils.POST("/test-email", middleware.RequireSuperuser(m.JWT, m.Users), testEmailLimiter, m.Handler.TestEmail)
	}
}
