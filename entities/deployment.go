package entities

import "github.com/google/uuid"

type Deployment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Algorithm string    `gorm:"type:varchar(16)" json:"algorithm"`
	Status    string    `gorm:"type:varchar(16);index" json:"status"` // "Unauthorized", "Deployed", "Failed"
	Output    string    `gorm:"type:text" json:"output,omitempty"`

	Timestamp
}

func (Deployment) TableName() string {
	return "deployments"
}
