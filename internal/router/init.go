package router

import (
	"github.com/ischaojie/soulapi/internal/application"
	"github.com/ischaojie/soulapi/internal/container"
	"github.com/ischaojie/soulapi/internal/domain/repository"
	pginfra "github.com/ischaojie/soulapi/internal/infrastructure/postgres"
	handlers "github.com/ischaojie/soulapi/internal/interface/http"
	"github.com/ischaojie/soulapi/internal/router/modules"
	"github.com/ischaojie/soulapi/pkg/helpers"
)

type moduleDeps struct {
	Users       repository.UserRepository
	Auth        *application.AuthService
	Psychology  *application.PsychologyService
	Words       *application.WordService
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
	PsyHandler  *handlers.PsychologyHandler
	WordHandler *handlers.WordHandler
	UtilHandler *handlers.UtilsHandler
}

func buildDeps() moduleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	cache := helpers.NewRedisHashCache(container.GetRedis())

	// A nil publisher stays a nil interface so the services can skip email.
	var pub application.Publisher
	if rp := container.GetRabbitPub(); rp != nil {
		pub = rp
	}

	users := pginfra.NewUserRepository(pool)
	psychologies := pginfra.NewPsychologyRepository(pool)
	words := pginfra.NewWordRepository(pool)

	auth := application.NewAuthService(users, container.GetJWT(), pub, logger, cfg)
	psySvc := application.NewPsychologyService(psychologies, cache, logger)
	wordSvc := application.NewWordService(words, cache, logger)

	return moduleDeps{
		Users:       users,
		Auth:        auth,
		Psychology:  psySvc,
		Words:       wordSvc,
		AuthHandler: handlers.NewAuthHandler(auth, logger),
		UserHandler: handlers.NewUserHandler(auth, logger),
		PsyHandler:  handlers.NewPsychologyHandler(psySvc, logger),
		WordHandler: handlers.NewWordHandler(wordSvc, logger),
		UtilHandler: handlers.NewUtilsHandler(pub, cfg, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(deps.AuthHandler))
	r.Add(modules.NewUserModule(deps.UserHandler, jwt, deps.Users))
	r.Add(modules.NewPsychologyModule(deps.PsyHandler, jwt, deps.Users))
	r.Add(modules.NewWordModule(deps.WordHandler, jwt, deps.Users))
	r.Add(modules.NewUtilsModule(deps.UtilHandler, jwt, deps.Users))
}
