package accessrequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// AccessRequest is a prospective user's stored application for access.
// The email is stored normalized (lowercase, trimmed); the partial unique
// index (email WHERE status <> 'rejected', i.e. pending or approved) backs
// the at-most-one-active-request rule, closing the check-then-act race the
// service-level pre-check cannot.
type AccessRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_access_requests_active_email,where:status <> 'rejected'"`
	FirstName    string    `gorm:"type:varchar(120);not null"`
	LastName     string    `gorm:"type:varchar(120);not null"`
	PasswordHash string    `gorm:"type:varchar(128);not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending';index:idx_access_requests_status"`

	ReviewedAt *time.Time
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`

	AssignedRole      *string    `gorm:"type:varchar(50)"`
	AssignedCompanyID *uuid.UUID `gorm:"type:uuid"`
	LinkedEmployeeID  *uuid.UUID `gorm:"type:uuid"`

	// TakeOnSheetID is absent for legacy requests that predate onboarding
	// sheets; when set, approval is gated on the sheet reaching complete.
	TakeOnSheetID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
