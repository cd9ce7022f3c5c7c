package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/resepku/recipe-api/internal/domain/entity"
	"github.com/resepku/recipe-api/internal/domain/repository"
)

// RecipeRepository persists recipe aggregates. Reviews (with their replies)
// ride in a jsonb column so the aggregate is saved and loaded as one unit.
type RecipeRepository struct {
	pool *pgxpool.Pool
}

func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

func marshalReviews(reviews []entity.Review) ([]byte, error) {
	if reviews == nil {
		reviews = []entity.Review{}
	}
	return json.Marshal(reviews)
}

func (r *RecipeRepository) Create(rec *entity.Recipe) error {
	ctx := context.Background()
	reviews, err := marshalReviews(rec.Reviews)
	if err != nil {
		return err
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []string{}
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO recipes (title, ingredients, instructions, category, cooking_time, photo_asset_id, photo_url, owner_id, reviews)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, version, created_at, updated_at
	`, rec.Title, rec.Ingredients, rec.Instructions, rec.Category, rec.CookingTime,
		rec.Photo.AssetID, rec.Photo.URL, rec.OwnerID, reviews)

	return row.Scan(&rec.ID, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *RecipeRepository) GetByID(id string) (*entity.Recipe, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, ingredients, instructions, category, cooking_time, photo_asset_id, photo_url, owner_id, reviews, version, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`, id)

	rec, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *RecipeRepository) Find(f repository.RecipeFilter) ([]*entity.Recipe, error) {
	ctx := context.Background()

	q := `
		SELECT id, title, ingredients, instructions, category, cooking_time, photo_asset_id, photo_url, owner_id, reviews, version, created_at, updated_at
		FROM recipes
	`
	args := []any{}
	switch {
	case f.Category != "" && f.OwnerID != "":
		q += ` WHERE category = $1 AND owner_id = $2`
		args = append(args, f.Category, f.OwnerID)
	case f.Category != "":
		q += ` WHERE category = $1`
		args = append(args, f.Category)
	case f.OwnerID != "":
		q += ` WHERE owner_id = $1`
		args = append(args, f.OwnerID)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Update is a whole-aggregate overwrite guarded by a compare-and-swap on the
// version column. A lost race surfaces as ErrConflict, never as a silent
// overwrite.
func (r *RecipeRepository) Update(rec *entity.Recipe) error {
	ctx := context.Background()
	reviews, err := marshalReviews(rec.Reviews)
	if err != nil {
		return err
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []string{}
	}
	rec.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE recipes
		SET title = $1, ingredients = $2, instructions = $3, category = $4, cooking_time = $5,
		    photo_asset_id = $6, photo_url = $7, reviews = $8, version = version + 1, updated_at = $9
		WHERE id = $10 AND version = $11
	`, rec.Title, rec.Ingredients, rec.Instructions, rec.Category, rec.CookingTime,
		rec.Photo.AssetID, rec.Photo.URL, reviews, rec.UpdatedAt, rec.ID, rec.Version)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		// Either the row is gone or someone else saved first.
		if _, gErr := r.GetByID(rec.ID); gErr != nil {
			return gErr
		}
		return repository.ErrConflict
	}

	rec.Version++
	return nil
}

func (r *RecipeRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	rec := &entity.Recipe{}
	var reviews []byte
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Ingredients, &rec.Instructions,
		&rec.Category, &rec.CookingTime, &rec.Photo.AssetID, &rec.Photo.URL,
		&rec.OwnerID, &reviews, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if len(reviews) > 0 {
		if err := json.Unmarshal(reviews, &rec.Reviews); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
