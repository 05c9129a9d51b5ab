package webhook

import (
	"backstube/domain"
	"backstube/entities"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	DeployService interface {
		HandleWebhook(ctx context.Context, signature string, body []byte) error
		GetDeployments(ctx context.Context, limit int) ([]domain.Deployment, error)
	}

	// Notifier is told about every successful or failed pull.
	Notifier func(subject, body string) error

	deployService struct {
		secret               string
		puller               Puller
		deploymentRepository DeploymentRepository
		notify               Notifier
	}
)

func NewDeployService(secret string, puller Puller, deploymentRepository DeploymentRepository, notify Notifier) DeployService {
	return &deployService{
		secret:               secret,
		puller:               puller,
		deploymentRepository: deploymentRepository,
		notify:               notify,
	}
}

// HandleWebhook pulls new source only after the signature checks out.
// Returns domain.ErrInvalidSignature without touching the working copy
// otherwise.
func (s *deployService) HandleWebhook(ctx context.Context, signature string, body []byte) error {
	algorithm, _, _ := ParseSignature(signature)

	if !Verify(signature, body, s.secret) {
		log.Warnw("webhook signature rejected", "algorithm", algorithm, "body_bytes", len(body))
		s.record(ctx, algorithm, domain.DeploymentUnauthorized, "")
		return domain.ErrInvalidSignature
	}

	output, err := s.puller.Pull(ctx)
	if err != nil {
		log.Errorw("source pull failed", "error", err)
		s.record(ctx, algorithm, domain.DeploymentFailed, output)
		s.sendNotification("Deployment failed", err.Error())
		return fmt.Errorf("%w: %v", domain.ErrPullFailed, err)
	}

	log.Infow("source pulled", "output", output)
	s.record(ctx, algorithm, domain.DeploymentDeployed, output)
	s.sendNotification("Deployment succeeded", output)
	return nil
}

func (s *deployService) GetDeployments(ctx context.Context, limit int) ([]domain.Deployment, error) {
	deployments, err := s.deploymentRepository.GetDeployments(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get deployments: %w", err)
	}

	result := make([]domain.Deployment, 0, len(deployments))
	for _, d := range deployments {
		result = append(result, domain.Deployment{
			ID:        d.ID.String(),
			Algorithm: d.Algorithm,
			Status:    d.Status,
			CreatedAt: d.CreatedAt,
		})
	}
	return result, nil
}

// record keeps the audit trail; failing to write it never changes the
// outcome of the webhook.
func (s *deployService) record(ctx context.Context, algorithm, status, output string) {
	now := time.Now().UTC()
	deployment := &entities.Deployment{
		ID:        uuid.New(),
		Algorithm: algorithm,
		Status:    status,
		Output:    output,
		Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.deploymentRepository.CreateDeployment(ctx, deployment); err != nil {
		log.Errorw("recording deployment failed", "status", status, "error", err)
	}
}

func (s *deployService) sendNotification(subject, body string) {
	if s.notify == nil {
		return
	}
	if err := s.notify(subject, body); err != nil {
		log.Warnw("deployment notification not sent", "error", err)
	}
}
