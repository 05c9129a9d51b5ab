package domain

import (
	"time"
)

var (
	MessageSuccessGetBackstube = "success get backstube"
	MessageFailedGetBackstube  = "failed to get backstube"
	MessageFailedToggle        = "failed to toggle backstube entry"
)

type (
	ToggleRequest struct {
		RecipeID int64 `json:"rezept_id" form:"rezept_id" validate:"required,min=1"`
	}

	ToggleResponse struct {
		Saved bool `json:"saved"`
	}

	BackstubeEntry struct {
		Recipe
		SavedAt time.Time `json:"saved_at"`
	}

	BackstubeResponse struct {
		Recipes []BackstubeEntry `json:"recipes"`
		Total   int              `json:"total"`
	}
)
