package domain

import (
	"errors"
)

// NearMatchLimit caps the near-match list.
const NearMatchLimit = 10

var (
	MessageSuccessMatchRecipes    = "success match recipes"
	MessageSuccessGetIngredients  = "success get ingredients"
	MessageSelectIngredient       = "select at least one ingredient."
	MessageFailedMatchRecipes     = "failed to match recipes"
	MessageFailedGetIngredients   = "failed to get ingredients"
	MessageFailedInvalidSelection = "invalid ingredient selection"

	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrInvalidIngredientID = errors.New("ingredient ids must be positive integers")
)

type (
	MatchRecipesRequest struct {
		IngredientIDs []int64 `json:"zutat_ids" form:"zutat_ids" validate:"dive,min=1"`
	}

	Ingredient struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	Recipe struct {
		ID         int64  `json:"id"`
		Title      string `json:"title"`
		Link       string `json:"link"`
		SourceSite string `json:"source_site"`
	}

	RecipeMatch struct {
		Recipe
		Missing int64 `json:"missing"`
	}

	MatchResult struct {
		Exact   []RecipeMatch `json:"exact"`
		Near    []RecipeMatch `json:"near"`
		Message string        `json:"message"`
	}
)
