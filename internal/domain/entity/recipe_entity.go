package entity

import (
	"time"
)

// Recipe is the aggregate root for the recipe domain. Reviews and their
// replies are embedded: they live and die with the recipe and are persisted
// as part of a whole-aggregate save.
type Recipe struct {
	ID           string
	Title        string
	Ingredients  []string
	Instructions string
	Category     string
	CookingTime  string
	Photo        PhotoAsset
	OwnerID      string // immutable after creation
	Reviews      []Review
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Review is embedded in Recipe; append-only, one per (recipe, author).
type Review struct {
	ID          string    `json:"id"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	AuthorID    string    `json:"authorId"`
	Replies     []Reply   `json:"replies"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Reply is embedded in Review; append-only.
type Reply struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	AuthorID    string    `json:"authorId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReviewByID returns a pointer into Reviews for the given id, or nil.
func (r *Recipe) ReviewByID(reviewID string) *Review {
	for i := range r.Reviews {
		if r.Reviews[i].ID == reviewID {
			return &r.Reviews[i]
		}
	}
	return nil
}

// HasReviewBy reports whether authorID already reviewed this recipe.
func (r *Recipe) HasReviewBy(authorID string) bool {
	for i := range r.Reviews {
		if r.Reviews[i].AuthorID == authorID {
			return true
		}
	}
	return false
}
