package domain

import (
	"errors"
	"time"
)

const (
	DeploymentUnauthorized = "Unauthorized"
	DeploymentDeployed     = "Deployed"
	DeploymentFailed       = "Failed"
)

var (
	MessageSuccessDeploy         = "Updated successfully"
	MessageUnauthorizedDeploy    = "Unauthorized"
	MessageFailedDeploy          = "Update failed"
	MessageSuccessGetDeployments = "success get deployments"
	MessageFailedGetDeployments  = "failed to get deployments"

	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrPullFailed       = errors.New("source pull failed")
)

// Deployment is the public view of an audit record. The pull output stays
// in the deployments table.
type Deployment struct {
	ID        string    `json:"id"`
	Algorithm string    `json:"algorithm"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
