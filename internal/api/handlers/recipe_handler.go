package handlers

import (
	"backstube/domain"
	"backstube/internal/api/presenters"
	"backstube/pkg/recipe"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	RecipeHandler interface {
		MatchRecipes(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) MatchRecipes(c *fiber.Ctx) error {
	req, err := parseMatchRequest(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInvalidSelection, domain.ErrInvalidIngredientID)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInvalidSelection, domain.ErrInvalidIngredientID)
	}

	res, err := h.recipeService.MatchRecipes(c.Context(), req.IngredientIDs)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidIngredientID) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInvalidSelection, err)
		}
		log.Errorw("matching recipes failed", "error", err)
		return presenters.DegradedResponse(c, fiber.StatusInternalServerError, res.Message, res, domain.ErrStoreUnavailable)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, res.Message)
}

func (h *recipeHandler) GetIngredients(c *fiber.Ctx) error {
	ingredients, err := h.recipeService.GetIngredients(c.Context())
	if err != nil {
		log.Errorw("listing ingredients failed", "error", err)
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetIngredients, domain.ErrStoreUnavailable)
	}

	return presenters.SuccessResponse(c, ingredients, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

// parseMatchRequest accepts a JSON body or a form carrying zutat_ids once per
// selected ingredient.
func parseMatchRequest(c *fiber.Ctx) (*domain.MatchRecipesRequest, error) {
	req := new(domain.MatchRecipesRequest)
	if c.Is("json") {
		if err := c.BodyParser(req); err != nil {
			return nil, err
		}
		return req, nil
	}

	var values []string
	for _, v := range c.Request().PostArgs().PeekMulti("zutat_ids") {
		values = append(values, string(v))
	}
	if len(values) == 0 {
		if form, err := c.MultipartForm(); err == nil {
			values = form.Value["zutat_ids"]
		}
	}

	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.IngredientIDs = append(req.IngredientIDs, id)
	}
	return req, nil
}
