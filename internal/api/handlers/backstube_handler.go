package handlers

import (
	"backstube/domain"
	"backstube/internal/api/presenters"
	"backstube/pkg/backstube"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	BackstubeHandler interface {
		Toggle(c *fiber.Ctx) error
		GetBackstube(c *fiber.Ctx) error
	}

	backstubeHandler struct {
		backstubeService backstube.BackstubeService
		validator        *validator.Validate
	}
)

func NewBackstubeHandler(backstubeService backstube.BackstubeService, validator *validator.Validate) BackstubeHandler {
	return &backstubeHandler{
		backstubeService: backstubeService,
		validator:        validator,
	}
}

// Toggle answers with the bare {"saved": bool} object the bookmark button
// expects.
func (h *backstubeHandler) Toggle(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int64)
	req := new(domain.ToggleRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.ErrMalformedBody)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggle, err)
	}

	res, err := h.backstubeService.Toggle(c.Context(), userID, req.RecipeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedToggle, err)
		}
		log.Errorw("toggling backstube failed", "user_id", userID, "recipe_id", req.RecipeID, "error", err)
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedToggle, domain.ErrStoreUnavailable)
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *backstubeHandler) GetBackstube(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int64)

	res, err := h.backstubeService.GetBackstube(c.Context(), userID)
	if err != nil {
		log.Errorw("listing backstube failed", "user_id", userID, "error", err)
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetBackstube, domain.ErrStoreUnavailable)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBackstube)
}
