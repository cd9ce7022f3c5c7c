package application

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/resepku/recipe-api/internal/domain/entity"
	repo "github.com/resepku/recipe-api/internal/domain/repository"
	"github.com/resepku/recipe-api/pkg/helpers"
	"github.com/resepku/recipe-api/pkg/mailer"
)

// UserCacheKey is the redis key holding the cached public record for a user.
// The auth middleware reads it; every mutation here invalidates it.
func UserCacheKey(userID string) string {
	return "user:profile:" + userID
}

// UserService is the identity directory: registration, credential checks,
// the favorites set and the profile photo.
type UserService struct {
	Repo   repo.UserRepository
	Assets AssetStore
	Redis  *redis.Client
	Pub    Publisher
	Logger *logrus.Logger
}

func NewUserService(userRepo repo.UserRepository, assets AssetStore, rdb *redis.Client, pub Publisher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: userRepo, Assets: assets, Redis: rdb, Pub: pub, Logger: logger}
}

// Register creates a user with a bcrypt-hashed credential. The welcome email
// is queued fire-and-forget; a broker outage never fails registration.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return nil, ErrValidation
	}

	if existing, err := s.Repo.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Username:  username,
		Email:     email,
		Password:  hash,
		Favorites: []string{},
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.Pub != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateWelcome,
			Data:     map[string]any{"Username": u.Username},
		}
		if pErr := s.Pub.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
		}
	}

	return u, nil
}

// Authenticate validates email/password and returns the user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ToggleFavorite mutates the favorites set. Redundant toggles are rejected so
// the operation stays idempotency-safe; the resulting membership is returned.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, recipeID string, add bool) (bool, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return false, ErrUserNotFound
	}

	if add {
		if !u.AddFavorite(recipeID) {
			return true, ErrAlreadyFavorited
		}
	} else {
		if !u.RemoveFavorite(recipeID) {
			return false, ErrNotFavorited
		}
	}

	if err := s.Repo.Update(u); err != nil {
		return !add, err
	}
	s.invalidateCache(ctx, userID)
	return add, nil
}

// UpdateProfilePhoto uploads the new photo, persists the handle and only then
// releases the previous asset. The old handle stays authoritative until the
// new one is committed.
func (s *UserService) UpdateProfilePhoto(ctx context.Context, userID string, photo PhotoUpload) (entity.PhotoAsset, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return entity.PhotoAsset{}, ErrUserNotFound
	}

	asset, err := s.Assets.Upload(ctx, "profiles", photo)
	if err != nil {
		return entity.PhotoAsset{}, err
	}

	prev := u.ProfilePhoto
	u.ProfilePhoto = asset
	if err := s.Repo.Update(u); err != nil {
		return entity.PhotoAsset{}, err
	}

	if prev.AssetID != "" {
		if rErr := s.Assets.Release(ctx, prev.AssetID); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("asset_id", prev.AssetID).Warn("old profile photo release failed")
		}
	}

	s.invalidateCache(ctx, userID)
	return asset, nil
}

func (s *UserService) invalidateCache(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, UserCacheKey(userID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("user cache invalidation failed")
	}
}
