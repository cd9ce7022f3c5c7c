package router

import (
	"github.com/resepku/recipe-api/internal/application"
	"github.com/resepku/recipe-api/internal/container"
	pginfra "github.com/resepku/recipe-api/internal/infrastructure/postgres"
	handlers "github.com/resepku/recipe-api/internal/interface/http"
	"github.com/resepku/recipe-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	recipeRepo := pginfra.NewRecipeRepository(container.GetPGPool())

	// a typed nil must not end up inside the Publisher interface
	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	userSvc := application.NewUserService(
		userRepo,
		container.GetAssetStore(),
		container.GetRedis(),
		pub,
		container.GetLogger(),
	)
	recipeSvc := application.NewRecipeService(
		recipeRepo,
		userRepo,
		container.GetAssetStore(),
		userSvc,
		container.GetLogger(),
	)

	authHandler := handlers.NewAuthHandler(userSvc, container.GetJWT(), container.GetLogger())
	recipeHandler := handlers.NewRecipeHandler(recipeSvc, userSvc, container.GetLogger(), container.GetConfig().MaxUploadBytes)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT(), userRepo))
	r.Add(modules.NewRecipeModule(recipeHandler, container.GetJWT(), userRepo))
}
