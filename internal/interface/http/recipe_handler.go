package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/resepku/recipe-api/internal/application"
	"github.com/resepku/recipe-api/internal/interface/middleware"
	"github.com/resepku/recipe-api/pkg/response"
	"github.com/resepku/recipe-api/pkg/validation"
)

const photoField = "photo"

type RecipeHandler struct {
	Svc            *application.RecipeService
	Users          *application.UserService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewRecipeHandler(svc *application.RecipeService, users *application.UserService, logger *logrus.Logger, maxUploadBytes int64) *RecipeHandler {
	return &RecipeHandler{Svc: svc, Users: users, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

// List GET /api/recipes?category=
func (h *RecipeHandler) List(c *gin.Context) {
	viewer := c.GetString(middleware.CtxUserIDKey)
	views, err := h.Svc.ListRecipes(c.Request.Context(), viewer, c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, views, "recipes", map[string]any{"count": len(views)})
}

// Get GET /api/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	viewer := c.GetString(middleware.CtxUserIDKey)
	view, err := h.Svc.GetRecipe(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "recipe", nil)
}

// Create POST /api/recipes (multipart: fields + photo)
func (h *RecipeHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	photo, closeFn, err := h.photoFromForm(c)
	if err != nil {
		fail(c, err)
		return
	}
	if closeFn != nil {
		defer closeFn()
	}

	view, err := h.Svc.CreateRecipe(c.Request.Context(), uid, recipeInputFromForm(c), photo)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, view, "recipe created", nil)
}

// Update PUT /api/recipes/:id (multipart, photo optional)
func (h *RecipeHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	photo, closeFn, err := h.photoFromForm(c)
	if err != nil {
		fail(c, err)
		return
	}
	if closeFn != nil {
		defer closeFn()
	}

	view, err := h.Svc.UpdateRecipe(c.Request.Context(), uid, c.Param("id"), recipeInputFromForm(c), photo)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "recipe updated", nil)
}

// Delete DELETE /api/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteRecipe(c.Request.Context(), uid, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"message": "recipe deleted"}, "recipe deleted", nil)
}

type addReviewRequest struct {
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

// AddReview POST /api/recipes/:id/reviews
func (h *RecipeHandler) AddReview(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	view, err := h.Svc.AddReview(c.Request.Context(), uid, c.Param("id"), req.Rating, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, view, "review added", nil)
}

type addReplyRequest struct {
	Description string `json:"description"`
}

// AddReply POST /api/recipes/:id/reviews/:reviewId/replies
func (h *RecipeHandler) AddReply(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req addReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	view, err := h.Svc.AddReply(c.Request.Context(), uid, c.Param("id"), c.Param("reviewId"), req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, view, "reply added", nil)
}

// Favorite POST /api/recipes/:id/favorite
func (h *RecipeHandler) Favorite(c *gin.Context) {
	h.toggleFavorite(c, true)
}

// Unfavorite DELETE /api/recipes/:id/favorite
func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	h.toggleFavorite(c, false)
}

func (h *RecipeHandler) toggleFavorite(c *gin.Context, add bool) {
	uid := c.GetString(middleware.CtxUserIDKey)
	fav, err := h.Svc.ToggleFavorite(c.Request.Context(), uid, c.Param("id"), add)
	if err != nil {
		fail(c, err)
		return
	}
	msg := "recipe removed from favorites"
	if fav {
		msg = "recipe added to favorites"
	}
	response.Success[any](c, http.StatusOK, gin.H{"message": msg, "isFavorited": fav}, msg, nil)
}

// UpdateProfilePhoto PUT /api/recipes/users/profile/photo (multipart)
func (h *RecipeHandler) UpdateProfilePhoto(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	photo, closeFn, err := h.photoFromForm(c)
	if err != nil {
		fail(c, err)
		return
	}
	if photo == nil {
		response.Fail(c, http.StatusBadRequest, "no photo file provided", nil)
		return
	}
	defer closeFn()

	asset, err := h.Users.UpdateProfilePhoto(c.Request.Context(), uid, *photo)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"profilePhoto": asset, "message": "profile photo updated"}, "profile photo updated", nil)
}

// photoFromForm extracts the photo file from a multipart form. A missing file
// is not an error here; services decide whether the photo is required. The
// size cap is enforced before anything is read.
func (h *RecipeHandler) photoFromForm(c *gin.Context) (*application.PhotoUpload, func(), error) {
	fh, err := c.FormFile(photoField)
	if err != nil {
		return nil, nil, nil
	}
	if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
		return nil, nil, application.ErrPayloadTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, application.ErrUploadFailed
	}
	return &application.PhotoUpload{
		Filename:    fh.Filename,
		ContentType: contentTypeOf(fh),
		Size:        fh.Size,
		Reader:      f,
	}, func() { _ = f.Close() }, nil
}

func contentTypeOf(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// recipeInputFromForm reads the recipe fields from a multipart form.
// Ingredients may arrive as repeated fields, a JSON array, or a single
// comma-separated value.
func recipeInputFromForm(c *gin.Context) application.RecipeInput {
	return application.RecipeInput{
		Title:        c.PostForm("title"),
		Ingredients:  parseIngredients(c.PostFormArray("ingredients")),
		Instructions: c.PostForm("instructions"),
		Category:     c.PostForm("category"),
		CookingTime:  c.PostForm("cookingTime"),
	}
}

func parseIngredients(values []string) []string {
	if len(values) != 1 {
		return values
	}
	v := strings.TrimSpace(values[0])
	if strings.HasPrefix(v, "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(v), &parsed); err == nil {
			return parsed
		}
	}
	if strings.Contains(v, ",") {
		return strings.Split(v, ",")
	}
	return values
}
