package takeonsheet

import (
	"context"
	"database/sql"

	"go-hradmin/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=take_on_sheet_repo.go -destination=mock/take_on_sheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sheet *TakeOnSheet) error
	FindByID(ctx context.Context, id string) (*TakeOnSheet, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]TakeOnSheet, error)
	FindByCompanyAndStatus(ctx context.Context, companyID, status string) ([]TakeOnSheet, error)
	FindByCompanyAndCreator(ctx context.Context, companyID, userID string) ([]TakeOnSheet, error)
	FindLatestByAccessRequestID(ctx context.Context, accessRequestID string) (*TakeOnSheet, error)
	CountByStatus(ctx context.Context, companyID string) (map[string]int64, error)
	Update(ctx context.Context, sheet *TakeOnSheet) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, sheet *TakeOnSheet) error {
	return r.db.WithContext(ctx).Create(sheet).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*TakeOnSheet, error) {
	var sheet TakeOnSheet
	err := r.db.WithContext(ctx).
		First(&sheet, "id = ?", id).Error
	return &sheet, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]TakeOnSheet, error) {
	var sheets []TakeOnSheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&sheets).Error
	return sheets, err
}

func (r *repository) FindByCompanyAndStatus(ctx context.Context, companyID, status string) ([]TakeOnSheet, error) {
	var sheets []TakeOnSheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&sheets).Error
	return sheets, err
}

func (r *repository) FindByCompanyAndCreator(ctx context.Context, companyID, userID string) ([]TakeOnSheet, error) {
	var sheets []TakeOnSheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&sheets).Error
	return sheets, err
}

// FindLatestByAccessRequestID resolves the back-reference from an access
// request. The 1:1 relationship is not enforced at write time, so if more
// than one sheet points at the same request the most recently created wins.
func (r *repository) FindLatestByAccessRequestID(ctx context.Context, accessRequestID string) (*TakeOnSheet, error) {
	var sheet TakeOnSheet
	err := r.db.WithContext(ctx).
		Where("access_request_id = ?", accessRequestID).
		Order("created_at DESC").
		First(&sheet).Error
	return &sheet, err
}

func (r *repository) CountByStatus(ctx context.Context, companyID string) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&TakeOnSheet{}).
		Select("status, count(*) AS total").
		Scopes(tenant.Scope(companyID)).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

func (r *repository) Update(ctx context.Context, sheet *TakeOnSheet) error {
	return r.db.WithContext(ctx).Save(sheet).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&TakeOnSheet{}, "id = ?", id).Error
}
