package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/resepku/recipe-api/internal/container"
	handlers "github.com/resepku/recipe-api/internal/interface/http"
	"github.com/resepku/recipe-api/internal/interface/middleware"
	repo "github.com/resepku/recipe-api/internal/domain/repository"
	"github.com/resepku/recipe-api/pkg/helpers"
)

// RecipeModule wires the recipe aggregate routes.
// Reads take an optional viewer identity; every mutation requires auth.
type RecipeModule struct {
	Handler *handlers.RecipeHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewRecipeModule(h *handlers.RecipeHandler, jwt *helpers.JWTManager, users repo.UserRepository) *RecipeModule {
	return &RecipeModule{Handler: h, JWT: jwt, Users: users}
}

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	optional := middleware.OptionalAuth(container.GetRedis(), m.JWT, m.Users)
	rg.GET("/recipes", optional, m.Handler.List)
	rg.GET("/recipes/:id", optional, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT, m.Users))
	{
		auth.POST("/recipes", m.Handler.Create)
		auth.PUT("/recipes/:id", m.Handler.Update)
		auth.DELETE("/recipes/:id", m.Handler.Delete)

		auth.POST("/recipes/:id/reviews", m.Handler.AddReview)
		auth.POST("/recipes/:id/reviews/:reviewId/replies", m.Handler.AddReply)

		auth.POST("/recipes/:id/favorite", m.Handler.Favorite)
		auth.DELETE("/recipes/:id/favorite", m.Handler.Unfavorite)

		auth.PUT("/recipes/users/profile/photo", m.Handler.UpdateProfilePhoto)
	}
}
