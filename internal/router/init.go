package router

import (
	userapp "github.com/userboard/userboard/internal/application"
	"github.com/userboard/userboard/internal/container"
	repouser "github.com/userboard/userboard/internal/domain/repository"
	"github.com/userboard/userboard/internal/infrastructure/mongodb"
	handlers "github.com/userboard/userboard/internal/interface/http"
	"github.com/userboard/userboard/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *userapp.Service
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	cfg := container.GetConfig()
	repo := mongodb.NewUserRepository(container.GetMongoDB().Collection(cfg.UsersCollection))

	service := userapp.NewService(repo, container.GetLogger())
	handler := handlers.NewUserHandler(service, container.GetLogger())

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
