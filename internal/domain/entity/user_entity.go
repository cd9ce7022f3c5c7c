package entity

import (
	"time"
)

// PhotoAsset is the handle to a stored photo: the object id in the external
// content store plus the URL it is served from.
type PhotoAsset struct {
	AssetID string `json:"assetId"`
	URL     string `json:"url"`
}

// User is the aggregate root for the identity domain.
// Passwords are stored as bcrypt hashes in Password.
type User struct {
	ID           string
	Username     string
	Email        string
	Password     string
	ProfilePhoto PhotoAsset
	Favorites    []string // recipe ids, set semantics
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasFavorite reports whether recipeID is in the user's favorites set.
func (u *User) HasFavorite(recipeID string) bool {
	for _, id := range u.Favorites {
		if id == recipeID {
			return true
		}
	}
	return false
}

// AddFavorite appends recipeID to the set. Returns false if already present.
func (u *User) AddFavorite(recipeID string) bool {
	if u.HasFavorite(recipeID) {
		return false
	}
	u.Favorites = append(u.Favorites, recipeID)
	return true
}

// RemoveFavorite drops recipeID from the set. Returns false if absent.
func (u *User) RemoveFavorite(recipeID string) bool {
	for i, id := range u.Favorites {
		if id == recipeID {
			u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
			return true
		}
	}
	return false
}
