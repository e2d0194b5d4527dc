package approval

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_saga_repo.go -destination=mock/approval_saga_repo_mock.go -package=mock
type SagaRepository interface {
	Create(ctx context.Context, saga *ApprovalSaga) error
	AdvanceStep(ctx context.Context, id string, step string) error
	SetExternalID(ctx context.Context, id string, externalID string) error
	MarkCompleted(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	FindLatestByAccessRequestID(ctx context.Context, accessRequestID string) (*ApprovalSaga, error)
}

type sagaRepository struct {
	db *gorm.DB
}

func NewSagaRepository(db *gorm.DB) SagaRepository {
	return &sagaRepository{db: db}
}

func (r *sagaRepository) Create(ctx context.Context, saga *ApprovalSaga) error {
	return r.db.WithContext(ctx).Create(saga).Error
}

func (r *sagaRepository) AdvanceStep(ctx context.Context, id string, step string) error {
	return r.db.WithContext(ctx).
		Model(&ApprovalSaga{}).
		Where("id = ?", id).
		Update("step", step).Error
}

func (r *sagaRepository) SetExternalID(ctx context.Context, id string, externalID string) error {
	return r.db.WithContext(ctx).
		Model(&ApprovalSaga{}).
		Where("id = ?", id).
		Update("external_id", externalID).Error
}

func (r *sagaRepository) MarkCompleted(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&ApprovalSaga{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"step":         StepCompleted,
			"status":       SagaStatusCompleted,
			"completed_at": &now,
		}).Error
}

func (r *sagaRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if len(reason) > 500 {
		reason = reason[:500]
	}
	return r.db.WithContext(ctx).
		Model(&ApprovalSaga{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     SagaStatusFailed,
			"last_error": reason,
		}).Error
}

func (r *sagaRepository) FindLatestByAccessRequestID(ctx context.Context, accessRequestID string) (*ApprovalSaga, error) {
	var saga ApprovalSaga
	err := r.db.WithContext(ctx).
		Where("access_request_id = ?", accessRequestID).
		Order("created_at DESC").
		First(&saga).Error
	if err != nil {
		return nil, err
	}
	return &saga, nil
}
