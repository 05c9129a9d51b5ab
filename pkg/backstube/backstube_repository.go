package backstube

import (
	"backstube/domain"
	"backstube/pkg/database"
	"context"
	"time"
)

type (
	BackstubeRepository interface {
		IsSaved(ctx context.Context, userID, recipeID int64) (bool, error)
		Save(ctx context.Context, userID, recipeID int64, at time.Time) (bool, error)
		Remove(ctx context.Context, userID, recipeID int64) (bool, error)
		GetByUser(ctx context.Context, userID int64) ([]domain.BackstubeEntry, error)
	}

	backstubeRepository struct {
		gw database.Gateway
	}
)

func NewBackstubeRepository(gw database.Gateway) BackstubeRepository {
	return &backstubeRepository{gw: gw}
}

func (r *backstubeRepository) IsSaved(ctx context.Context, userID, recipeID int64) (bool, error) {
	row, err := r.gw.ReadOne(ctx,
		"SELECT 1 AS saved FROM backstube WHERE user_id = ? AND recipe_id = ?", userID, recipeID)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

// Save inserts the entry and reports whether a row was created. A concurrent
// toggle that already inserted the pair makes this a no-op rather than an error.
func (r *backstubeRepository) Save(ctx context.Context, userID, recipeID int64, at time.Time) (bool, error) {
	affected, err := r.gw.Write(ctx,
		"INSERT INTO backstube (user_id, recipe_id, created_at) VALUES (?, ?, ?) ON CONFLICT (user_id, recipe_id) DO NOTHING",
		userID, recipeID, at)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *backstubeRepository) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	affected, err := r.gw.Write(ctx,
		"DELETE FROM backstube WHERE user_id = ? AND recipe_id = ?", userID, recipeID)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *backstubeRepository) GetByUser(ctx context.Context, userID int64) ([]domain.BackstubeEntry, error) {
	rows, err := r.gw.Read(ctx, `
		SELECT r.id, r.title, r.link, r.source_site, b.created_at
		FROM backstube b
		JOIN recipes r ON r.id = b.recipe_id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC, r.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.BackstubeEntry, 0, len(rows))
	for _, row := range rows {
		id, err := row.Int64("id")
		if err != nil {
			return nil, err
		}
		savedAt, err := row.Time("created_at")
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.BackstubeEntry{
			Recipe: domain.Recipe{
				ID:         id,
				Title:      row.String("title"),
				Link:       row.String("link"),
				SourceSite: row.String("source_site"),
			},
			SavedAt: savedAt,
		})
	}
	return entries, nil
}
