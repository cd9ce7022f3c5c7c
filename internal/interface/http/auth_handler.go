package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/resepku/recipe-api/internal/application"
	"github.com/resepku/recipe-api/internal/interface/middleware"
	"github.com/resepku/recipe-api/pkg/helpers"
	"github.com/resepku/recipe-api/pkg/response"
	"github.com/resepku/recipe-api/pkg/validation"
)

type AuthHandler struct {
	Users  *application.UserService
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthHandler(users *application.UserService, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, JWT: jwt, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	token, _, err := h.JWT.GenerateToken(u.ID)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}

	response.Success(c, http.StatusCreated, authResponse{ID: u.ID, Username: u.Username, Email: u.Email, Token: token}, "registered", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	token, _, err := h.JWT.GenerateToken(u.ID)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}

	response.Success(c, http.StatusOK, authResponse{ID: u.ID, Username: u.Username, Email: u.Email, Token: token}, "login successful", nil)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Users.GetProfile(uid)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, application.NewUserView(u), "profile", nil)
}
