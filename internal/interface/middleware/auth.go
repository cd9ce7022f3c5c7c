package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/resepku/recipe-api/internal/application"
	repo "github.com/resepku/recipe-api/internal/domain/repository"
	"github.com/resepku/recipe-api/pkg/helpers"
	"github.com/resepku/recipe-api/pkg/response"
)

const CtxUserIDKey = "userID"

// cache TTL for resolved public user records
const userCacheTTL = 15 * time.Minute

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// resolveUser verifies the bearer token and confirms the subject still exists,
// going through the redis cache when available. Returns the user id or "".
func resolveUser(c *gin.Context, rdb *redis.Client, jwt *helpers.JWTManager, users repo.UserRepository) string {
	token := bearerToken(c)
	if token == "" {
		return ""
	}
	uid, err := jwt.ParseToken(token)
	if err != nil || uid == "" {
		return ""
	}

	if rdb != nil {
		var cached application.UserView
		if ok, cErr := helpers.RedisGetJSON(c.Request.Context(), rdb, application.UserCacheKey(uid), &cached); cErr == nil && ok {
			return cached.ID
		}
	}

	u, err := users.GetByID(uid)
	if err != nil || u == nil {
		return ""
	}
	if rdb != nil {
		_ = helpers.RedisSetJSON(c.Request.Context(), rdb, application.UserCacheKey(uid), application.NewUserView(u), userCacheTTL)
	}
	return u.ID
}

// Auth requires a valid bearer token whose subject resolves to an existing
// user. Sets userID in the Gin context; rejects with 401 otherwise. No token
// material is ever logged.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := resolveUser(c, rdb, jwt, users)
		if uid == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid or missing token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}

// OptionalAuth resolves the viewer identity when a valid token is present and
// stays silent otherwise; anonymous reads proceed without annotation.
func OptionalAuth(rdb *redis.Client, jwt *helpers.JWTManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := resolveUser(c, rdb, jwt, users); uid != "" {
			c.Set(CtxUserIDKey, uid)
		}
		c.Next()
	}
}
