package backstube

import (
	"backstube/domain"
	"backstube/pkg/recipe"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type (
	BackstubeService interface {
		Toggle(ctx context.Context, userID, recipeID int64) (domain.ToggleResponse, error)
		GetBackstube(ctx context.Context, userID int64) (domain.BackstubeResponse, error)
	}

	backstubeService struct {
		backstubeRepository BackstubeRepository
		recipeService       recipe.RecipeService
		now                 func() time.Time
	}
)

func NewBackstubeService(backstubeRepository BackstubeRepository, recipeService recipe.RecipeService) BackstubeService {
	return &backstubeService{
		backstubeRepository: backstubeRepository,
		recipeService:       recipeService,
		now:                 time.Now,
	}
}

// Toggle flips whether recipeID is in the user's Backstube and reports the
// resulting state.
func (s *backstubeService) Toggle(ctx context.Context, userID, recipeID int64) (domain.ToggleResponse, error) {
	if _, err := s.recipeService.GetRecipe(ctx, recipeID); err != nil {
		return domain.ToggleResponse{}, err
	}

	saved, err := s.backstubeRepository.IsSaved(ctx, userID, recipeID)
	if err != nil {
		return domain.ToggleResponse{}, fmt.Errorf("toggle lookup: %w", err)
	}

	if saved {
		if _, err := s.backstubeRepository.Remove(ctx, userID, recipeID); err != nil {
			return domain.ToggleResponse{}, fmt.Errorf("toggle remove: %w", err)
		}
		return domain.ToggleResponse{Saved: false}, nil
	}

	created, err := s.backstubeRepository.Save(ctx, userID, recipeID, s.now().UTC())
	if err != nil {
		return domain.ToggleResponse{}, fmt.Errorf("toggle save: %w", err)
	}
	if !created {
		log.Debugw("backstube entry already present", "user_id", userID, "recipe_id", recipeID)
	}
	return domain.ToggleResponse{Saved: true}, nil
}

func (s *backstubeService) GetBackstube(ctx context.Context, userID int64) (domain.BackstubeResponse, error) {
	entries, err := s.backstubeRepository.GetByUser(ctx, userID)
	if err != nil {
		return domain.BackstubeResponse{}, fmt.Errorf("get backstube: %w", err)
	}
	return domain.BackstubeResponse{
		Recipes: entries,
		Total:   len(entries),
	}, nil
}
