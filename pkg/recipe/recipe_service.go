package recipe

import (
	"backstube/domain"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2/log"
)

type (
	RecipeService interface {
		MatchRecipes(ctx context.Context, ingredientIDs []int64) (domain.MatchResult, error)
		GetIngredients(ctx context.Context) ([]domain.Ingredient, error)
		GetRecipe(ctx context.Context, id int64) (domain.Recipe, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
	}
}

// MatchRecipes classifies every recipe against the selected ingredients.
// An empty selection never reaches the store.
func (s *recipeService) MatchRecipes(ctx context.Context, ingredientIDs []int64) (domain.MatchResult, error) {
	selection, err := normalizeSelection(ingredientIDs)
	if err != nil {
		return emptyResult(domain.MessageFailedInvalidSelection), err
	}
	if len(selection) == 0 {
		return emptyResult(domain.MessageSelectIngredient), nil
	}

	coverages, err := s.recipeRepository.GetCoverage(ctx, selection)
	if err != nil {
		return emptyResult(domain.MessageFailedMatchRecipes), fmt.Errorf("match recipes: %w", err)
	}

	exact, near := Partition(coverages, domain.NearMatchLimit)
	log.Debugw("recipes matched", "selected", len(selection), "exact", len(exact), "near", len(near))

	return domain.MatchResult{
		Exact:   exact,
		Near:    near,
		Message: domain.MessageSuccessMatchRecipes,
	}, nil
}

func (s *recipeService) GetIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	ingredients, err := s.recipeRepository.GetIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("get ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id int64) (domain.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return domain.Recipe{}, err
		}
		return domain.Recipe{}, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return *recipe, nil
}

// Partition splits coverages into exact matches (nothing missing, by title)
// and near matches (by missing count, then title), keeping at most nearLimit
// near matches.
func Partition(coverages []Coverage, nearLimit int) (exact, near []domain.RecipeMatch) {
	exact = make([]domain.RecipeMatch, 0)
	near = make([]domain.RecipeMatch, 0)

	for _, c := range coverages {
		if c.Required <= 0 {
			continue
		}
		missing := c.Required - c.Covered
		if missing < 0 {
			missing = 0
		}

		match := domain.RecipeMatch{Recipe: c.Recipe, Missing: missing}
		if missing == 0 {
			exact = append(exact, match)
		} else {
			near = append(near, match)
		}
	}

	sort.SliceStable(exact, func(i, j int) bool {
		return byTitle(exact[i], exact[j])
	})
	sort.SliceStable(near, func(i, j int) bool {
		if near[i].Missing != near[j].Missing {
			return near[i].Missing < near[j].Missing
		}
		return byTitle(near[i], near[j])
	})

	if nearLimit >= 0 && len(near) > nearLimit {
		near = near[:nearLimit]
	}
	return exact, near
}

func byTitle(a, b domain.RecipeMatch) bool {
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.ID < b.ID
}

func normalizeSelection(ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	selection := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, domain.ErrInvalidIngredientID
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		selection = append(selection, id)
	}
	return selection, nil
}

func emptyResult(message string) domain.MatchResult {
	return domain.MatchResult{
		Exact:   []domain.RecipeMatch{},
		Near:    []domain.RecipeMatch{},
		Message: message,
	}
}
