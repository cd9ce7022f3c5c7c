package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resepku/recipe-api/internal/domain/entity"
	repo "github.com/resepku/recipe-api/internal/domain/repository"
	"github.com/resepku/recipe-api/pkg/helpers"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (s *stubUserRepo) Create(u *entity.User) error { return nil }
func (s *stubUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repo.ErrNotFound
}
func (s *stubUserRepo) GetByIDs(ids []string) (map[string]*entity.User, error) {
	return map[string]*entity.User{}, nil
}
func (s *stubUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, repo.ErrNotFound }
func (s *stubUserRepo) Update(u *entity.User) error                   { return nil }

func authTestSetup(t *testing.T) (*gin.Engine, *helpers.JWTManager, *entity.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	u := &entity.User{ID: uuid.NewString(), Username: "alice", Email: "a@example.com"}
	users := &stubUserRepo{users: map[string]*entity.User{u.ID: u}}
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	engine := gin.New()
	engine.GET("/protected", Auth(nil, jwt, users), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	engine.GET("/open", OptionalAuth(nil, jwt, users), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return engine, jwt, u
}

func get(engine *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthAcceptsValidToken(t *testing.T) {
	engine, jwt, u := authTestSetup(t)
	token, _, err := jwt.GenerateToken(u.ID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := get(engine, "/protected", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if w.Body.String() != u.ID {
		t.Fatalf("expected user id %s in context, got %s", u.ID, w.Body.String())
	}
}

func TestAuthRejections(t *testing.T) {
	engine, jwt, u := authTestSetup(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := get(engine, "/protected", tt.header); w.Code != http.StatusUnauthorized {
				t.Fatalf("status %d", w.Code)
			}
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := helpers.NewJWTManager("other-secret", time.Hour)
		token, _, _ := other.GenerateToken(u.ID)
		if w := get(engine, "/protected", "Bearer "+token); w.Code != http.StatusUnauthorized {
			t.Fatalf("status %d", w.Code)
		}
	})

	t.Run("vanished user", func(t *testing.T) {
		token, _, _ := jwt.GenerateToken(uuid.NewString())
		if w := get(engine, "/protected", "Bearer "+token); w.Code != http.StatusUnauthorized {
			t.Fatalf("status %d", w.Code)
		}
	})
}

func TestOptionalAuth(t *testing.T) {
	engine, jwt, u := authTestSetup(t)

	w := get(engine, "/open", "")
	if w.Code != http.StatusOK || w.Body.String() != "" {
		t.Fatalf("anonymous: status %d, body %q", w.Code, w.Body.String())
	}

	w = get(engine, "/open", "Bearer nonsense")
	if w.Code != http.StatusOK || w.Body.String() != "" {
		t.Fatalf("bad token must degrade to anonymous: status %d, body %q", w.Code, w.Body.String())
	}

	token, _, _ := jwt.GenerateToken(u.ID)
	w = get(engine, "/open", "Bearer "+token)
	if w.Code != http.StatusOK || w.Body.String() != u.ID {
		t.Fatalf("authenticated: status %d, body %q", w.Code, w.Body.String())
	}
}
