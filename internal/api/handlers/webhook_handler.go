package handlers

import (
	"backstube/domain"
	"backstube/internal/api/presenters"
	"backstube/pkg/webhook"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const maxDeploymentHistory = 100

type (
	WebhookHandler interface {
		UpdateServer(c *fiber.Ctx) error
		GetDeployments(c *fiber.Ctx) error
	}

	webhookHandler struct {
		deployService webhook.DeployService
	}
)

func NewWebhookHandler(deployService webhook.DeployService) WebhookHandler {
	return &webhookHandler{
		deployService: deployService,
	}
}

func (h *webhookHandler) UpdateServer(c *fiber.Ctx) error {
	signature := c.Get("X-Hub-Signature")
	if signature == "" {
		signature = c.Get("X-Hub-Signature-256")
	}

	err := h.deployService.HandleWebhook(c.Context(), signature, c.Body())
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).SendString(domain.MessageSuccessDeploy)
	case errors.Is(err, domain.ErrInvalidSignature):
		return c.Status(fiber.StatusUnauthorized).SendString(domain.MessageUnauthorizedDeploy)
	default:
		return c.Status(fiber.StatusInternalServerError).SendString(domain.MessageFailedDeploy)
	}
}

func (h *webhookHandler) GetDeployments(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > maxDeploymentHistory {
		limit = maxDeploymentHistory
	}

	deployments, err := h.deployService.GetDeployments(c.Context(), limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDeployments, domain.ErrStoreUnavailable)
	}

	return presenters.SuccessResponse(c, deployments, fiber.StatusOK, domain.MessageSuccessGetDeployments)
}
