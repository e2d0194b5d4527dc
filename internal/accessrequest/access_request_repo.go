package accessrequest

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=access_request_repo.go -destination=mock/access_request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *AccessRequest) error
	FindByID(ctx context.Context, id string) (*AccessRequest, error)
	FindActiveByEmail(ctx context.Context, email string) (*AccessRequest, error)
	FindLatestByEmail(ctx context.Context, email string) (*AccessRequest, error)
	FindAllByStatus(ctx context.Context, status string) ([]AccessRequest, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Update(ctx context.Context, req *AccessRequest) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, req *AccessRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*AccessRequest, error) {
	var req AccessRequest
	err := r.db.WithContext(ctx).
		First(&req, "id = ?", id).Error
	return &req, err
}

// FindActiveByEmail returns the pending or approved record for a normalized
// email, if one exists. The partial unique index guarantees at most one.
func (r *repository) FindActiveByEmail(ctx context.Context, email string) (*AccessRequest, error) {
	var req AccessRequest
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Order("created_at DESC").
		First(&req).Error
	return &req, err
}

// FindLatestByEmail returns the most recent record of any status.
func (r *repository) FindLatestByEmail(ctx context.Context, email string) (*AccessRequest, error) {
	var req AccessRequest
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&req).Error
	return &req, err
}

func (r *repository) FindAllByStatus(ctx context.Context, status string) ([]AccessRequest, error) {
	var reqs []AccessRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// CountByStatus is a server-side aggregate; it never fetches rows.
func (r *repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AccessRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, req *AccessRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
