package recipe

import (
	"backstube/domain"
	"backstube/pkg/database"
	"context"
	"fmt"
)

type (
	RecipeRepository interface {
		GetCoverage(ctx context.Context, ingredientIDs []int64) ([]Coverage, error)
		GetIngredients(ctx context.Context) ([]domain.Ingredient, error)
		GetRecipeByID(ctx context.Context, id int64) (*domain.Recipe, error)
	}

	// Coverage is how many of a recipe's required ingredients a selection holds.
	Coverage struct {
		Recipe   domain.Recipe
		Required int64
		Covered  int64
	}

	recipeRepository struct {
		gw database.Gateway
	}
)

func NewRecipeRepository(gw database.Gateway) RecipeRepository {
	return &recipeRepository{gw: gw}
}

// GetCoverage computes required and covered counts for every recipe in one
// grouped pass over recipe_ingredients. Recipes without any requirement rows
// drop out of the join and are never returned.
func (r *recipeRepository) GetCoverage(ctx context.Context, ingredientIDs []int64) ([]Coverage, error) {
	args := make([]any, 0, len(ingredientIDs))
	for _, id := range ingredientIDs {
		args = append(args, id)
	}

	query := `
		SELECT r.id, r.title, r.link, r.source_site,
		       COUNT(*) AS required,
		       SUM(CASE WHEN ri.ingredient_id IN (` + database.Placeholders(len(args)) + `) THEN 1 ELSE 0 END) AS covered
		FROM recipes r
		JOIN recipe_ingredients ri ON ri.recipe_id = r.id
		GROUP BY r.id, r.title, r.link, r.source_site
		ORDER BY r.title ASC
	`

	rows, err := r.gw.Read(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	coverages := make([]Coverage, 0, len(rows))
	for _, row := range rows {
		recipe, err := recipeFromRow(row)
		if err != nil {
			return nil, err
		}
		required, err := row.Int64("required")
		if err != nil {
			return nil, err
		}
		covered, err := row.Int64("covered")
		if err != nil {
			return nil, err
		}
		coverages = append(coverages, Coverage{Recipe: recipe, Required: required, Covered: covered})
	}
	return coverages, nil
}

func (r *recipeRepository) GetIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := r.gw.Read(ctx, "SELECT id, name FROM ingredients ORDER BY name ASC")
	if err != nil {
		return nil, err
	}

	ingredients := make([]domain.Ingredient, 0, len(rows))
	for _, row := range rows {
		id, err := row.Int64("id")
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, domain.Ingredient{ID: id, Name: row.String("name")})
	}
	return ingredients, nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	row, err := r.gw.ReadOne(ctx, "SELECT id, title, link, source_site FROM recipes WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := recipeFromRow(row)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func recipeFromRow(row database.Row) (domain.Recipe, error) {
	id, err := row.Int64("id")
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("recipe id: %w", err)
	}
	return domain.Recipe{
		ID:         id,
		Title:      row.String("title"),
		Link:       row.String("link"),
		SourceSite: row.String("source_site"),
	}, nil
}
