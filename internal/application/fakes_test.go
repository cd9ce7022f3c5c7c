package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/resepku/recipe-api/internal/domain/entity"
	repo "github.com/resepku/recipe-api/internal/domain/repository"
)

// In-memory fakes for the repository and gateway interfaces. They return
// copies so service-held aggregates never alias stored state, matching how
// the real repositories behave.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	c.Favorites = append([]string(nil), u.Favorites...)
	return &c
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.users {
		if ex.Email == u.Email {
			return repo.ErrConflict
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	f.users[u.ID] = copyUser(u)
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return copyUser(u), nil
}

func (f *fakeUserRepo) GetByIDs(ids []string) (map[string]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]*entity.User, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = copyUser(u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	f.users[u.ID] = copyUser(u)
	return nil
}

type fakeRecipeRepo struct {
	mu        sync.Mutex
	recipes   map[string]*entity.Recipe
	updateErr error
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[string]*entity.Recipe{}}
}

func copyRecipe(r *entity.Recipe) *entity.Recipe {
	c := *r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	c.Reviews = make([]entity.Review, len(r.Reviews))
	for i, rv := range r.Reviews {
		cv := rv
		cv.Replies = append([]entity.Reply(nil), rv.Replies...)
		c.Reviews[i] = cv
	}
	return &c
}

func (f *fakeRecipeRepo) Create(r *entity.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.Version = 1
	f.recipes[r.ID] = copyRecipe(r)
	return nil
}

func (f *fakeRecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return copyRecipe(r), nil
}

func (f *fakeRecipeRepo) Find(filter repo.RecipeFilter) ([]*entity.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Recipe
	for _, r := range f.recipes {
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		if filter.OwnerID != "" && r.OwnerID != filter.OwnerID {
			continue
		}
		out = append(out, copyRecipe(r))
	}
	return out, nil
}

func (f *fakeRecipeRepo) Update(r *entity.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	stored, ok := f.recipes[r.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if stored.Version != r.Version {
		return repo.ErrConflict
	}
	r.Version++
	f.recipes[r.ID] = copyRecipe(r)
	return nil
}

func (f *fakeRecipeRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.recipes, id)
	return nil
}

type fakeAssetStore struct {
	mu         sync.Mutex
	uploads    int
	released   []string
	live       map[string]bool
	maxBytes   int64
	uploadErr  error
	releaseErr error
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{live: map[string]bool{}}
}

func (f *fakeAssetStore) Upload(ctx context.Context, folder string, p PhotoUpload) (entity.PhotoAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return entity.PhotoAsset{}, f.uploadErr
	}
	if f.maxBytes > 0 && p.Size > f.maxBytes {
		return entity.PhotoAsset{}, ErrPayloadTooLarge
	}
	f.uploads++
	id := fmt.Sprintf("%s/asset-%d", folder, f.uploads)
	f.live[id] = true
	return entity.PhotoAsset{AssetID: id, URL: "https://assets.example.com/" + id}, nil
}

func (f *fakeAssetStore) Release(ctx context.Context, assetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, assetID)
	if f.releaseErr != nil {
		return f.releaseErr
	}
	delete(f.live, assetID)
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(ctx context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}

func testPhoto() *PhotoUpload {
	return &PhotoUpload{
		Filename:    "dish.jpg",
		ContentType: "image/jpeg",
		Size:        1024,
		Reader:      strings.NewReader("fake-image-bytes"),
	}
}
