package approval

import (
	"time"

	"github.com/google/uuid"
)

// Saga steps advance strictly forward; the last recorded step tells an
// operator exactly where a failed provisioning run stopped.
const (
	StepStarted         = "started"
	StepIdentityCreated = "identity_created"
	StepProfileUpserted = "profile_upserted"
	StepCompleted       = "completed"
)

const (
	SagaStatusRunning   = "running"
	SagaStatusCompleted = "completed"
	SagaStatusFailed    = "failed"
)

type ApprovalSaga struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccessRequestID uuid.UUID `gorm:"type:uuid;index"`
	Step            string    `gorm:"type:varchar(50)"`
	Status          string    `gorm:"type:varchar(20)"`
	ExternalID      *string   `gorm:"type:varchar(100)"`
	LastError       *string   `gorm:"type:varchar(500)"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

func (ApprovalSaga) TableName() string {
	return "approval_sagas"
}
