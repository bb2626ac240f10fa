package router

import (
	"github.com/nazarov/footballmanager/internal/application"
	"github.com/nazarov/footballmanager/internal/container"
	pginfra "github.com/nazarov/footballmanager/internal/infrastructure/postgres"
	handlers "github.com/nazarov/footballmanager/internal/interface/http"
	"github.com/nazarov/footballmanager/internal/router/modules"
	"github.com/nazarov/footballmanager/pkg/helpers"
)

func buildAuthHandler(users *pginfra.UserRepository) *handlers.AuthHandler {
	cfg := container.GetConfig()
	svc := application.NewAuthService(
		users,
		pginfra.NewRoleRepository(container.GetPGPool()),
		helpers.BcryptHasher{},
		container.GetJWT(),
		container.GetLogger(),
	)
	svc.Pub = container.GetRabbitPub()
	svc.ES = container.GetES()
	svc.ESPlayersIndex = cfg.ESPlayersIndex
	svc.AppName = cfg.AppName
	svc.MailEnabled = cfg.MailSendEnabled
	return handlers.NewAuthHandler(svc, container.GetLogger())
}

func buildUserHandler(users *pginfra.UserRepository) *handlers.UserHandler {
	cfg := container.GetConfig()
	svc := application.NewUserService(users, container.GetRedis(), container.GetLogger())
	svc.ES = container.GetES()
	svc.ESPlayersIndex = cfg.ESPlayersIndex
	svc.GCS = container.GetGCS()
	svc.GCSBucket = cfg.GCSBucket
	return handlers.NewUserHandler(svc, container.GetLogger())
}

// InitModules wires all feature modules into the router registry. Called once
// during startup.
func InitModules(r *Registry) {
	users := pginfra.NewUserRepository(container.GetPGPool())

	r.Add(modules.NewAuthModule(buildAuthHandler(users)))
	r.Add(modules.NewUserModule(buildUserHandler(users), container.GetJWT()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
