package accessrequest

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	accessrequesterrors "go-hradmin/internal/accessrequest/errors"
	"go-hradmin/internal/credential"
	"go-hradmin/internal/shared/contextutil"
	"go-hradmin/internal/takeonsheet"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=access_request_service.go -destination=mock/access_request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAccessRequestRequest) (AccessRequestResponse, error)
	GetByID(ctx context.Context, id string) (AccessRequestResponse, error)
	GetByEmail(ctx context.Context, email string) (AccessRequestResponse, error)
	ListPending(ctx context.Context) ([]AccessRequestResponse, error)
	CountPending(ctx context.Context) (int64, error)
	ListByStatus(ctx context.Context, status string) ([]AccessRequestResponse, error)
	Approve(ctx context.Context, id, reviewerID string, req ApproveAccessRequestRequest) (AccessRequestResponse, error)
	Reject(ctx context.Context, id, reviewerID string) (AccessRequestResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	sheets takeonsheet.Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, sheets takeonsheet.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("accessrequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("accessrequest.service")
	}
	return &service{db: db, repo: repo, sheets: sheets, logger: l}
}

// normalizeEmail is applied before every lookup and write so any casing or
// whitespace variant of an address behaves like the canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Create(ctx context.Context, req CreateAccessRequestRequest) (AccessRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	email := normalizeEmail(req.Email)
	s.logger.Debug("create access request requested",
		zap.String("request_id", rid),
		zap.String("email", email),
	)

	// Pre-check so pending and already-approved get distinct messages.
	// The partial unique index still backs this up if two submissions race.
	existing, err := s.repo.FindActiveByEmail(ctx, email)
	if err == nil {
		if existing.Status == StatusPending {
			s.logger.Warn("create access request duplicate pending", zap.String("email", email))
			return AccessRequestResponse{}, accessrequesterrors.ErrRequestAlreadyPending
		}
		s.logger.Warn("create access request duplicate approved", zap.String("email", email))
		return AccessRequestResponse{}, accessrequesterrors.ErrAccountAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("create access request lookup failed", zap.Error(err))
		return AccessRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create access request begin tx failed", zap.Error(err))
		return AccessRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record := &AccessRequest{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: credential.Hash(req.Password),
		Status:       StatusPending,
	}

	if err := qtx.Create(ctx, record); err != nil {
		s.logger.Error("create access request persist failed", zap.Error(err))
		return AccessRequestResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create access request commit failed", zap.String("request_id", rid), zap.Error(err))
		return AccessRequestResponse{}, err
	}

	s.logger.Info("create access request success",
		zap.String("request_id", rid),
		zap.String("access_request_id", record.ID.String()),
	)

	return mapToResponse(*record), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AccessRequestResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AccessRequestResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*record), nil
}

// GetByEmail prefers the active (pending or approved) record; failing that
// it falls back to the most recent record of any status.
func (s *service) GetByEmail(ctx context.Context, email string) (AccessRequestResponse, error) {
	normalized := normalizeEmail(email)

	record, err := s.repo.FindActiveByEmail(ctx, normalized)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record, err = s.repo.FindLatestByEmail(ctx, normalized)
	}
	if err != nil {
		return AccessRequestResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*record), nil
}

func (s *service) ListPending(ctx context.Context) ([]AccessRequestResponse, error) {
	records, err := s.repo.FindAllByStatus(ctx, StatusPending)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(records), nil
}

func (s *service) CountPending(ctx context.Context) (int64, error) {
	count, err := s.repo.CountByStatus(ctx, StatusPending)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return count, nil
}

func (s *service) ListByStatus(ctx context.Context, status string) ([]AccessRequestResponse, error) {
	if !IsValidStatus(status) {
		return nil, accessrequesterrors.ErrUnknownStatus
	}
	records, err := s.repo.FindAllByStatus(ctx, status)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(records), nil
}

func (s *service) Approve(
	ctx context.Context,
	id, reviewerID string,
	req ApproveAccessRequestRequest,
) (AccessRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("approve access request requested",
		zap.String("request_id", rid),
		zap.String("access_request_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.Bool("override_onboarding", req.OverrideOnboarding),
	)

	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return AccessRequestResponse{}, accessrequesterrors.ErrInvalidReviewerID
	}
	companyUUID, err := uuid.Parse(req.AssignedCompanyID)
	if err != nil {
		return AccessRequestResponse{}, accessrequesterrors.ErrInvalidCompanyID
	}
	var employeeUUID *uuid.UUID
	if req.LinkedEmployeeID != nil && *req.LinkedEmployeeID != "" {
		parsed, err := uuid.Parse(*req.LinkedEmployeeID)
		if err != nil {
			return AccessRequestResponse{}, accessrequesterrors.ErrInvalidRequestID
		}
		employeeUUID = &parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve access request begin tx failed", zap.Error(err))
		return AccessRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Re-read immediately before validating; another reviewer may have
	// decided this request since the list was rendered.
	record, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AccessRequestResponse{}, mapRepositoryError(err)
	}
	if record.Status != StatusPending {
		s.logger.Warn("approve access request not pending",
			zap.String("access_request_id", id),
			zap.String("status", record.Status),
		)
		return AccessRequestResponse{}, accessrequesterrors.RequestNotPending(record.Status)
	}

	if record.TakeOnSheetID != nil && !req.OverrideOnboarding {
		// The sheet is resolved by back-reference, not by the stored id:
		// the cross-reference is what onboarding maintains.
		sheet, err := s.sheets.FindLatestByAccessRequestID(ctx, id)
		switch {
		case err == nil:
			if sheet.Status != takeonsheet.StatusComplete {
				s.logger.Warn("approve access request onboarding incomplete",
					zap.String("access_request_id", id),
					zap.String("sheet_status", sheet.Status),
				)
				return AccessRequestResponse{}, accessrequesterrors.OnboardingIncomplete(sheet.Status)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Dangling reference: nothing to gate on.
		default:
			s.logger.Error("approve access request sheet lookup failed", zap.Error(err))
			return AccessRequestResponse{}, err
		}
	}

	now := time.Now().UTC()
	assignedRole := req.AssignedRole
	record.Status = StatusApproved
	record.ReviewedAt = &now
	record.ReviewedBy = &reviewerUUID
	record.AssignedRole = &assignedRole
	record.AssignedCompanyID = &companyUUID
	record.LinkedEmployeeID = employeeUUID

	if err := qtx.Update(ctx, record); err != nil {
		s.logger.Error("approve access request persist failed", zap.Error(err))
		return AccessRequestResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve access request commit failed", zap.Error(err))
		return AccessRequestResponse{}, err
	}

	// Return the re-read record so server-assigned fields are reflected.
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AccessRequestResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("approve access request success",
		zap.String("request_id", rid),
		zap.String("access_request_id", id),
		zap.String("assigned_role", req.AssignedRole),
	)

	return mapToResponse(*updated), nil
}

func (s *service) Reject(ctx context.Context, id, reviewerID string) (AccessRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("reject access request requested",
		zap.String("request_id", rid),
		zap.String("access_request_id", id),
		zap.String("reviewer_id", reviewerID),
	)

	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return AccessRequestResponse{}, accessrequesterrors.ErrInvalidReviewerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject access request begin tx failed", zap.Error(err))
		return AccessRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AccessRequestResponse{}, mapRepositoryError(err)
	}
	if record.Status != StatusPending {
		s.logger.Warn("reject access request not pending",
			zap.String("access_request_id", id),
			zap.String("status", record.Status),
		)
		return AccessRequestResponse{}, accessrequesterrors.RequestNotPending(record.Status)
	}

	now := time.Now().UTC()
	record.Status = StatusRejected
	record.ReviewedAt = &now
	record.ReviewedBy = &reviewerUUID

	if err := qtx.Update(ctx, record); err != nil {
		s.logger.Error("reject access request persist failed", zap.Error(err))
		return AccessRequestResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject access request commit failed", zap.Error(err))
		return AccessRequestResponse{}, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AccessRequestResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("reject access request success",
		zap.String("request_id", rid),
		zap.String("access_request_id", id),
	)

	return mapToResponse(*updated), nil
}

func mapToResponse(record AccessRequest) AccessRequestResponse {
	resp := AccessRequestResponse{
		ID:        record.ID.String(),
		Email:     record.Email,
		FirstName: record.FirstName,
		LastName:  record.LastName,
		Status:    record.Status,
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
	}
	if record.ReviewedAt != nil {
		v := record.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	if record.ReviewedBy != nil {
		v := record.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	resp.AssignedRole = record.AssignedRole
	if record.AssignedCompanyID != nil {
		v := record.AssignedCompanyID.String()
		resp.AssignedCompanyID = &v
	}
	if record.LinkedEmployeeID != nil {
		v := record.LinkedEmployeeID.String()
		resp.LinkedEmployeeID = &v
	}
	if record.TakeOnSheetID != nil {
		v := record.TakeOnSheetID.String()
		resp.TakeOnSheetID = &v
	}
	return resp
}

func mapToListResponse(records []AccessRequest) []AccessRequestResponse {
	resp := make([]AccessRequestResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp
}
