package application

import (
	"time"

	"github.com/resepku/recipe-api/internal/domain/entity"
)

// UserRef is the resolved display form of an author/owner reference.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ReplyView struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Author      UserRef   `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ReviewView struct {
	ID          string      `json:"id"`
	Rating      int         `json:"rating"`
	Description string      `json:"description"`
	Author      UserRef     `json:"author"`
	Replies     []ReplyView `json:"replies"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// RecipeView is the read model returned by every recipe operation. IsFavorited
// is a per-viewer projection: present iff the request carried an identity,
// never persisted.
type RecipeView struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Ingredients  []string          `json:"ingredients"`
	Instructions string            `json:"instructions"`
	Category     string            `json:"category"`
	CookingTime  string            `json:"cookingTime"`
	Photo        entity.PhotoAsset `json:"photo"`
	CreatedBy    UserRef           `json:"createdBy"`
	Reviews      []ReviewView      `json:"reviews"`
	IsFavorited  *bool             `json:"isFavorited,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// UserView is the public user shape: the credential hash never leaves the
// service layer.
type UserView struct {
	ID           string            `json:"id"`
	Username     string            `json:"username"`
	Email        string            `json:"email"`
	ProfilePhoto entity.PhotoAsset `json:"profilePhoto"`
	Favorites    []string          `json:"favorites"`
}

func NewUserView(u *entity.User) UserView {
	favs := u.Favorites
	if favs == nil {
		favs = []string{}
	}
	return UserView{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		ProfilePhoto: u.ProfilePhoto,
		Favorites:    favs,
	}
}
