package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resepku/recipe-api/internal/application"
	"github.com/resepku/recipe-api/pkg/response"
)

// statusFor maps service-layer sentinel errors to HTTP status codes. Anything
// unrecognized is a 500 with a generic message so internals never leak.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrValidation),
		errors.Is(err, application.ErrInvalidID),
		errors.Is(err, application.ErrEmailTaken),
		errors.Is(err, application.ErrDuplicateReview),
		errors.Is(err, application.ErrAlreadyFavorited),
		errors.Is(err, application.ErrNotFavorited),
		errors.Is(err, application.ErrPayloadTooLarge):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrForbidden):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrRecipeNotFound),
		errors.Is(err, application.ErrReviewNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, application.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, application.ErrUploadFailed):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	response.Fail(c, status, msg, nil)
}
