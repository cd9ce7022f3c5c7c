package repository

import (
	"errors"

	"github.com/resepku/recipe-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an aggregate save loses the optimistic
	// version check, or a unique constraint is violated.
	ErrConflict = errors.New("conflict")
)

// RecipeFilter narrows Find results. Zero values match everything.
type RecipeFilter struct {
	Category string
	OwnerID  string
}

// RecipeRepository persists recipe aggregates. Embedded reviews/replies are
// saved and loaded as part of the whole aggregate; there is no independent
// persistence for sub-entities.
type RecipeRepository interface {
	Create(r *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	Find(f RecipeFilter) ([]*entity.Recipe, error)
	// Update overwrites the whole aggregate; it is a compare-and-swap on the
	// version column and returns ErrConflict when the row moved underneath.
	Update(r *entity.Recipe) error
	Delete(id string) error
}
