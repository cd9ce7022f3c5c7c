package application

import "errors"

// Sentinel errors for the service layer. Handlers map these to HTTP status
// codes with errors.Is; services may wrap them with field-level detail.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrForbidden          = errors.New("not allowed to modify this recipe")
	ErrDuplicateReview    = errors.New("recipe already reviewed by this user")
	ErrAlreadyFavorited   = errors.New("recipe already in favorites")
	ErrNotFavorited       = errors.New("recipe not in favorites")
	ErrInvalidID          = errors.New("invalid identifier")
	ErrUploadFailed       = errors.New("photo upload failed")
	ErrPayloadTooLarge    = errors.New("photo exceeds the upload size limit")
	ErrConflict           = errors.New("concurrent modification, retry the request")
)
