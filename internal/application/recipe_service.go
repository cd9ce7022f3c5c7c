package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/resepku/recipe-api/internal/domain/entity"
	repo "github.com/resepku/recipe-api/internal/domain/repository"
)

const recipePhotoFolder = "recipes"

// FavoriteToggler is the slice of the identity directory the recipe service
// delegates favorite-set mutation (and its idempotency rules) to.
// *UserService satisfies it.
type FavoriteToggler interface {
	ToggleFavorite(ctx context.Context, userID, recipeID string, add bool) (bool, error)
}

// RecipeService orchestrates the recipe aggregate: ownership checks, photo
// replacement, review/reply append and the per-viewer favorite annotation.
// It holds no state of its own; every operation works on a freshly loaded
// aggregate.
type RecipeService struct {
	Recipes   repo.RecipeRepository
	Users     repo.UserRepository
	Assets    AssetStore
	Favorites FavoriteToggler
	Logger    *logrus.Logger
}

func NewRecipeService(recipes repo.RecipeRepository, users repo.UserRepository, assets AssetStore, favorites FavoriteToggler, logger *logrus.Logger) *RecipeService {
	return &RecipeService{Recipes: recipes, Users: users, Assets: assets, Favorites: favorites, Logger: logger}
}

type RecipeInput struct {
	Title        string
	Ingredients  []string
	Instructions string
	Category     string
	CookingTime  string
}

func trimIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (in *RecipeInput) validateRequired() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case len(trimIngredients(in.Ingredients)) == 0:
		return fmt.Errorf("%w: ingredients are required", ErrValidation)
	case strings.TrimSpace(in.Instructions) == "":
		return fmt.Errorf("%w: instructions are required", ErrValidation)
	case strings.TrimSpace(in.Category) == "":
		return fmt.Errorf("%w: category is required", ErrValidation)
	case strings.TrimSpace(in.CookingTime) == "":
		return fmt.Errorf("%w: cookingTime is required", ErrValidation)
	}
	return nil
}

// CreateRecipe validates all fields, uploads the photo and only then persists
// the aggregate. The ordering matters: a persisted recipe must never point at
// a non-existent asset, while an orphaned upload is a cleanable leftover.
func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID string, in RecipeInput, photo *PhotoUpload) (*RecipeView, error) {
	if err := in.validateRequired(); err != nil {
		return nil, err
	}
	if photo == nil || photo.Reader == nil {
		return nil, fmt.Errorf("%w: photo is required", ErrValidation)
	}

	asset, err := s.Assets.Upload(ctx, recipePhotoFolder, *photo)
	if err != nil {
		return nil, err
	}

	rec := &entity.Recipe{
		Title:        strings.TrimSpace(in.Title),
		Ingredients:  trimIngredients(in.Ingredients),
		Instructions: strings.TrimSpace(in.Instructions),
		Category:     strings.TrimSpace(in.Category),
		CookingTime:  strings.TrimSpace(in.CookingTime),
		Photo:        asset,
		OwnerID:      ownerID,
		Reviews:      []entity.Review{},
	}
	if err := s.Recipes.Create(rec); err != nil {
		return nil, err
	}

	return s.buildView(rec, nil)
}

// UpdateRecipe applies partial-update semantics: empty fields keep their
// current value. A new photo replaces the old asset; the old one is released
// only after the aggregate save committed, so a failed upload or a lost save
// leaves the stored handle authoritative and its object intact.
func (s *RecipeService) UpdateRecipe(ctx context.Context, actorID, recipeID string, in RecipeInput, photo *PhotoUpload) (*RecipeView, error) {
	rec, err := s.loadOwned(actorID, recipeID)
	if err != nil {
		return nil, err
	}

	var replacedAsset string
	if photo != nil && photo.Reader != nil {
		asset, uErr := s.Assets.Upload(ctx, recipePhotoFolder, *photo)
		if uErr != nil {
			return nil, uErr
		}
		replacedAsset = rec.Photo.AssetID
		rec.Photo = asset
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		rec.Title = t
	}
	if ing := trimIngredients(in.Ingredients); len(ing) > 0 {
		rec.Ingredients = ing
	}
	if t := strings.TrimSpace(in.Instructions); t != "" {
		rec.Instructions = t
	}
	if t := strings.TrimSpace(in.Category); t != "" {
		rec.Category = t
	}
	if t := strings.TrimSpace(in.CookingTime); t != "" {
		rec.CookingTime = t
	}

	if err := s.save(rec); err != nil {
		return nil, err
	}

	if replacedAsset != "" {
		if rErr := s.Assets.Release(ctx, replacedAsset); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("asset_id", replacedAsset).Warn("old recipe photo release failed")
		}
	}
	return s.buildView(rec, nil)
}

// DeleteRecipe releases the photo asset best-effort and deletes the
// aggregate. The row is removed even when the release fails.
func (s *RecipeService) DeleteRecipe(ctx context.Context, actorID, recipeID string) error {
	rec, err := s.loadOwned(actorID, recipeID)
	if err != nil {
		return err
	}

	if rec.Photo.AssetID != "" {
		if rErr := s.Assets.Release(ctx, rec.Photo.AssetID); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("asset_id", rec.Photo.AssetID).Warn("recipe photo release failed")
		}
	}

	if err := s.Recipes.Delete(rec.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	return nil
}

// ListRecipes returns matching recipes; viewerID may be empty for anonymous
// reads, in which case no favorite annotation is computed.
func (s *RecipeService) ListRecipes(ctx context.Context, viewerID, category string) ([]*RecipeView, error) {
	recs, err := s.Recipes.Find(repo.RecipeFilter{Category: strings.TrimSpace(category)})
	if err != nil {
		return nil, err
	}

	viewer := s.loadViewer(viewerID)
	out := make([]*RecipeView, 0, len(recs))
	for _, rec := range recs {
		v, err := s.buildView(rec, viewer)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, viewerID, recipeID string) (*RecipeView, error) {
	rec, err := s.load(recipeID)
	if err != nil {
		return nil, err
	}
	return s.buildView(rec, s.loadViewer(viewerID))
}

// AddReview appends a review to the aggregate. One review per author per
// recipe; the check is a linear scan over the embedded collection.
func (s *RecipeService) AddReview(ctx context.Context, actorID, recipeID string, rating int, description string) (*RecipeView, error) {
	rec, err := s.load(recipeID)
	if err != nil {
		return nil, err
	}

	if rating < 1 || rating > 10 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 10", ErrValidation)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if rec.HasReviewBy(actorID) {
		return nil, ErrDuplicateReview
	}

	rec.Reviews = append(rec.Reviews, entity.Review{
		ID:          uuid.NewString(),
		Rating:      rating,
		Description: description,
		AuthorID:    actorID,
		Replies:     []entity.Reply{},
		CreatedAt:   time.Now(),
	})

	if err := s.save(rec); err != nil {
		return nil, err
	}
	return s.buildView(rec, nil)
}

// AddReply appends a reply to a review looked up by id inside the aggregate.
func (s *RecipeService) AddReply(ctx context.Context, actorID, recipeID, reviewID string, description string) (*RecipeView, error) {
	rec, err := s.load(recipeID)
	if err != nil {
		return nil, err
	}

	rev := rec.ReviewByID(reviewID)
	if rev == nil {
		return nil, ErrReviewNotFound
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	rev.Replies = append(rev.Replies, entity.Reply{
		ID:          uuid.NewString(),
		Description: description,
		AuthorID:    actorID,
		CreatedAt:   time.Now(),
	})

	if err := s.save(rec); err != nil {
		return nil, err
	}
	return s.buildView(rec, nil)
}

// ToggleFavorite checks the recipe exists and delegates the set mutation,
// including the redundant-toggle rejection, to the identity directory.
func (s *RecipeService) ToggleFavorite(ctx context.Context, actorID, recipeID string, add bool) (bool, error) {
	if _, err := s.load(recipeID); err != nil {
		return false, err
	}
	return s.Favorites.ToggleFavorite(ctx, actorID, recipeID, add)
}

func (s *RecipeService) load(recipeID string) (*entity.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, ErrInvalidID
	}
	rec, err := s.Recipes.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *RecipeService) loadOwned(actorID, recipeID string) (*entity.Recipe, error) {
	rec, err := s.load(recipeID)
	if err != nil {
		return nil, err
	}
	if rec.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return rec, nil
}

func (s *RecipeService) save(rec *entity.Recipe) error {
	if err := s.Recipes.Update(rec); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrRecipeNotFound
		case errors.Is(err, repo.ErrConflict):
			return ErrConflict
		}
		return err
	}
	return nil
}

// loadViewer resolves the acting identity for annotation purposes. A stale
// token whose user vanished degrades to an anonymous read.
func (s *RecipeService) loadViewer(viewerID string) *entity.User {
	if viewerID == "" {
		return nil
	}
	u, err := s.Users.GetByID(viewerID)
	if err != nil {
		return nil
	}
	return u
}

// buildView resolves owner and author references to display names in one
// batched lookup and computes the favorite annotation for the viewer.
func (s *RecipeService) buildView(rec *entity.Recipe, viewer *entity.User) (*RecipeView, error) {
	ids := []string{rec.OwnerID}
	for i := range rec.Reviews {
		ids = append(ids, rec.Reviews[i].AuthorID)
		for j := range rec.Reviews[i].Replies {
			ids = append(ids, rec.Reviews[i].Replies[j].AuthorID)
		}
	}

	users, err := s.Users.GetByIDs(dedupe(ids))
	if err != nil {
		return nil, err
	}
	ref := func(id string) UserRef {
		if u, ok := users[id]; ok {
			return UserRef{ID: id, Username: u.Username}
		}
		return UserRef{ID: id}
	}

	reviews := make([]ReviewView, 0, len(rec.Reviews))
	for i := range rec.Reviews {
		rv := rec.Reviews[i]
		replies := make([]ReplyView, 0, len(rv.Replies))
		for _, rp := range rv.Replies {
			replies = append(replies, ReplyView{
				ID:          rp.ID,
				Description: rp.Description,
				Author:      ref(rp.AuthorID),
				CreatedAt:   rp.CreatedAt,
			})
		}
		reviews = append(reviews, ReviewView{
			ID:          rv.ID,
			Rating:      rv.Rating,
			Description: rv.Description,
			Author:      ref(rv.AuthorID),
			Replies:     replies,
			CreatedAt:   rv.CreatedAt,
		})
	}

	view := &RecipeView{
		ID:           rec.ID,
		Title:        rec.Title,
		Ingredients:  rec.Ingredients,
		Instructions: rec.Instructions,
		Category:     rec.Category,
		CookingTime:  rec.CookingTime,
		Photo:        rec.Photo,
		CreatedBy:    ref(rec.OwnerID),
		Reviews:      reviews,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	if viewer != nil {
		fav := viewer.HasFavorite(rec.ID)
		view.IsFavorited = &fav
	}
	return view, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
