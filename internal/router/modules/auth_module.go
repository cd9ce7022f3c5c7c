package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/resepku/recipe-api/internal/container"
	handlers "github.com/resepku/recipe-api/internal/interface/http"
	"github.com/resepku/recipe-api/internal/interface/middleware"
	repo "github.com/resepku/recipe-api/internal/domain/repository"
	"github.com/resepku/recipe-api/pkg/helpers"
)

// AuthModule wires registration/login/me routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, users repo.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT, m.Users))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
