package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserProfile is the local admin-side record for a provisioned identity.
type UserProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalID string    `gorm:"type:varchar(100);uniqueIndex:uq_user_profiles_external_id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex:uq_user_profiles_email"`
	FirstName  string    `gorm:"type:varchar(100)"`
	LastName   string    `gorm:"type:varchar(100)"`
	Role       string    `gorm:"type:varchar(50)"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

//go:generate mockgen -source=profile_store.go -destination=mock/profile_store_mock.go -package=mock
type ProfileStore interface {
	UpsertProfile(ctx context.Context, profile *UserProfile) error
	FindByEmail(ctx context.Context, email string) (*UserProfile, error)
}

type profileStore struct {
	db *gorm.DB
}

func NewProfileStore(db *gorm.DB) ProfileStore {
	return &profileStore{db: db}
}

// UpsertProfile is safe to retry: a replayed saga step lands on the same
// email row instead of creating a duplicate.
func (s *profileStore) UpsertProfile(ctx context.Context, profile *UserProfile) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"external_id", "first_name", "last_name", "role", "company_id", "employee_id", "updated_at",
			}),
		}).
		Create(profile).Error
}

func (s *profileStore) FindByEmail(ctx context.Context, email string) (*UserProfile, error) {
	var profile UserProfile
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
