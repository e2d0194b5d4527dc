package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeAccessRequestApproved = "access_request_approved"
	TypeAccessRequestRejected = "access_request_rejected"
	TypeOnboardingCompleted   = "onboarding_completed"
)

type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;index"`
	RecipientEmail string    `gorm:"type:varchar(255);index"`
	Type           string    `gorm:"type:varchar(50)"`
	Subject        string    `gorm:"type:varchar(255)"`
	Body           string    `gorm:"type:text"`

	ReadAt    *time.Time
	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
