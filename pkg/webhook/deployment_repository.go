package webhook

import (
	"backstube/entities"
	"context"

	"gorm.io/gorm"
)

type (
	DeploymentRepository interface {
		CreateDeployment(ctx context.Context, deployment *entities.Deployment) error
		GetDeployments(ctx context.Context, limit int) ([]*entities.Deployment, error)
	}

	deploymentRepository struct {
		db *gorm.DB
	}
)

func NewDeploymentRepository(db *gorm.DB) DeploymentRepository {
	return &deploymentRepository{db: db}
}

func (r *deploymentRepository) CreateDeployment(ctx context.Context, deployment *entities.Deployment) error {
	return r.db.WithContext(ctx).Create(deployment).Error
}

func (r *deploymentRepository) GetDeployments(ctx context.Context, limit int) ([]*entities.Deployment, error) {
	var deployments []*entities.Deployment
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&deployments).Error; err != nil {
		return nil, err
	}
	return deployments, nil
}
