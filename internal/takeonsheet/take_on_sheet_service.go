package takeonsheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-hradmin/internal/events"
	"go-hradmin/internal/messaging/kafka"
	"go-hradmin/internal/roles"
	"go-hradmin/internal/shared/contextutil"
	"go-hradmin/internal/shared/counter"
	takeonsheeterrors "go-hradmin/internal/takeonsheet/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const StatusCountsKeyPrefix = "takeonsheets:counts:"

func GetStatusCountsKey(companyID string) string {
	return StatusCountsKeyPrefix + companyID
}

//go:generate mockgen -source=take_on_sheet_service.go -destination=mock/take_on_sheet_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateTakeOnSheetRequest) (TakeOnSheetResponse, error)
	GetByID(ctx context.Context, id string) (TakeOnSheetResponse, error)
	Update(ctx context.Context, id, actorID, actorRole string, req UpdateTakeOnSheetRequest) (TakeOnSheetResponse, error)
	Delete(ctx context.Context, id string) error
	ListByCompany(ctx context.Context, companyID string) ([]TakeOnSheetResponse, error)
	ListByStatus(ctx context.Context, companyID, status string) ([]TakeOnSheetResponse, error)
	ListByCreator(ctx context.Context, companyID, userID string) ([]TakeOnSheetResponse, error)
	GetByAccessRequestID(ctx context.Context, accessRequestID string) (TakeOnSheetResponse, error)
	TransitionStatus(ctx context.Context, id, newStatus, actorID, notes string) (TakeOnSheetResponse, error)
	CanEditSection(role, section, currentStatus string) bool
	CanTransitionStatus(role, fromStatus, toStatus string) bool
	IsComplete(ctx context.Context, id string) (bool, error)
	CanCreateEmployee(ctx context.Context, id string) (EmployeeReadiness, error)
	LinkToEmployee(ctx context.Context, id, employeeID, actorID string) (TakeOnSheetResponse, error)
	CountsByStatus(ctx context.Context, companyID string) (StatusCounts, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	table   *roles.Table
	rdb     *redis.Client
	outbox  kafka.OutboxRepository
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	table *roles.Table,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("takeonsheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("takeonsheet.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		table:   table,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

// NewServiceWithOutbox additionally queues a completed event in the same
// transaction as the final transition.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	table *roles.Table,
	rdb *redis.Client,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	svc := NewService(db, repo, counterRepo, table, rdb, logger...).(*service)
	svc.outbox = outbox
	return svc
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateTakeOnSheetRequest,
) (TakeOnSheetResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create take-on sheet requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return TakeOnSheetResponse{}, takeonsheeterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TakeOnSheetResponse{}, takeonsheeterrors.ErrInvalidActorID
	}

	var accessRequestUUID *uuid.UUID
	if req.AccessRequestID != nil && *req.AccessRequestID != "" {
		parsed, err := uuid.Parse(*req.AccessRequestID)
		if err != nil {
			return TakeOnSheetResponse{}, takeonsheeterrors.ErrInvalidSheetID
		}
		accessRequestUUID = &parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create take-on sheet begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TakeOnSheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, companyID, "take_on_sheet_number")
	if err != nil {
		s.logger.Error("create take-on sheet generate number failed", zap.Error(err))
		return TakeOnSheetResponse{}, err
	}

	// Every section starts structurally complete: all fields present, with
	// placeholder defaults where the business has them.
	sheet := &TakeOnSheet{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		SheetNumber:     fmt.Sprintf("TOS-%06d", nextVal),
		Status:          StatusDraft,
		EmploymentInfo:  EmploymentInfo{},
		PersonalDetails: defaultPersonalDetails(),
		SystemAccess:    defaultSystemAccess(),
		Documents:       Documents{},
		StatusHistory:   StatusHistory{},
		AccessRequestID: accessRequestUUID,
		CreatedBy:       actorUUID,
	}
	sheet.EmploymentInfo = mergeEmploymentInfo(sheet.EmploymentInfo, req.EmploymentInfo)

	if err := qtx.Create(ctx, sheet); err != nil {
		s.logger.Error("create take-on sheet persist failed", zap.Error(err))
		return TakeOnSheetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create take-on sheet commit failed", zap.String("request_id", rid), zap.Error(err))
		return TakeOnSheetResponse{}, err
	}

	s.invalidateCounts(ctx, companyID)

	s.logger.Info("create take-on sheet success",
		zap.String("request_id", rid),
		zap.String("sheet_id", sheet.ID.String()),
		zap.String("sheet_number", sheet.SheetNumber),
	)

	return mapToResponse(*sheet), nil
}

func (s *service) GetByID(ctx context.Context, id string) (TakeOnSheetResponse, error) {
	sheet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TakeOnSheetResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*sheet), nil
}

func (s *service) Update(
	ctx context.Context,
	id, actorID, actorRole string,
	req UpdateTakeOnSheetRequest,
) (TakeOnSheetResponse, error) {
	s.logger.Debug("update take-on sheet requested",
		zap.String("sheet_id", id),
		zap.String("actor_id", actorID),
		zap.String("actor_role", actorRole),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TakeOnSheetResponse{}, takeonsheeterrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update take-on sheet begin tx failed", zap.Error(err))
		return TakeOnSheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sheet, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TakeOnSheetResponse{}, mapRepositoryError(err)
	}

	// Per supplied section: the static role table decides whether the actor
	// may touch it in the sheet's current status. Fail closed.
	if req.EmploymentInfo != nil && !s.table.CanEditSection(actorRole, roles.SectionEmploymentInfo, sheet.Status) {
		return TakeOnSheetResponse{}, takeonsheeterrors.SectionEditForbidden(actorRole, roles.SectionEmploymentInfo, sheet.Status)
	}
	if req.PersonalDetails != nil && !s.table.CanEditSection(actorRole, roles.SectionPersonalDetails, sheet.Status) {
		return TakeOnSheetResponse{}, takeonsheeterrors.SectionEditForbidden(actorRole, roles.SectionPersonalDetails, sheet.Status)
	}
	if req.SystemAccess != nil && !s.table.CanEditSection(actorRole, roles.SectionSystemAccess, sheet.Status) {
		return TakeOnSheetResponse{}, takeonsheeterrors.SectionEditForbidden(actorRole, roles.SectionSystemAccess, sheet.Status)
	}

	sheet.EmploymentInfo = mergeEmploymentInfo(sheet.EmploymentInfo, req.EmploymentInfo)
	sheet.PersonalDetails = mergePersonalDetails(sheet.PersonalDetails, req.PersonalDetails)
	sheet.SystemAccess = mergeSystemAccess(sheet.SystemAccess, req.SystemAccess)
	sheet.UpdatedBy = &actorUUID

	if err := qtx.Update(ctx, sheet); err != nil {
		s.logger.Error("update take-on sheet persist failed", zap.Error(err))
		return TakeOnSheetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update take-on sheet commit failed", zap.Error(err))
		return TakeOnSheetResponse{}, err
	}

	s.logger.Info("update take-on sheet success", zap.String("sheet_id", id))

	return mapToResponse(*sheet), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sheet, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if sheet.Status != StatusDraft {
		s.logger.Warn("delete take-on sheet refused",
			zap.String("sheet_id", id),
			zap.String("status", sheet.Status),
		)
		return takeonsheeterrors.DeleteNotAllowed(sheet.Status)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete take-on sheet failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete take-on sheet commit failed", zap.Error(err))
		return err
	}

	s.invalidateCounts(ctx, sheet.CompanyID.String())

	s.logger.Info("delete take-on sheet success", zap.String("sheet_id", id))
	return nil
}

func (s *service) ListByCompany(ctx context.Context, companyID string) ([]TakeOnSheetResponse, error) {
	sheets, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(sheets), nil
}

func (s *service) ListByStatus(ctx context.Context, companyID, status string) ([]TakeOnSheetResponse, error) {
	if !IsValidStatus(status) {
		return nil, takeonsheeterrors.ErrUnknownStatus
	}
	sheets, err := s.repo.FindByCompanyAndStatus(ctx, companyID, status)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(sheets), nil
}

func (s *service) ListByCreator(ctx context.Context, companyID, userID string) ([]TakeOnSheetResponse, error) {
	sheets, err := s.repo.FindByCompanyAndCreator(ctx, companyID, userID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(sheets), nil
}

func (s *service) GetByAccessRequestID(ctx context.Context, accessRequestID string) (TakeOnSheetResponse, error) {
	sheet, err := s.repo.FindLatestByAccessRequestID(ctx, accessRequestID)
	if err != nil {
		return TakeOnSheetResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*sheet), nil
}

func (s *service) TransitionStatus(
	ctx context.Context,
	id, newStatus, actorID, notes string,
) (TakeOnSheetResponse, error) {
	s.logger.Debug("transition take-on sheet requested",
		zap.String("sheet_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", newStatus),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TakeOnSheetResponse{}, takeonsheeterrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition take-on sheet begin tx failed", zap.Error(err))
		return TakeOnSheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Re-read immediately before validating to shrink the race window
	// between concurrent reviewers.
	sheet, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TakeOnSheetResponse{}, mapRepositoryError(err)
	}

	if !isValidTransition(sheet.Status, newStatus) {
		s.logger.Warn("transition take-on sheet invalid",
			zap.String("sheet_id", id),
			zap.String("from_status", sheet.Status),
			zap.String("to_status", newStatus),
		)
		return TakeOnSheetResponse{}, takeonsheeterrors.InvalidTransition(
			sheet.Status, newStatus, AllowedNextStatuses(sheet.Status),
		)
	}

	sheet.StatusHistory = append(sheet.StatusHistory, StatusChange{
		FromStatus: sheet.Status,
		ToStatus:   newStatus,
		ChangedBy:  actorID,
		ChangedAt:  time.Now().UTC(),
		Notes:      notes,
	})
	sheet.Status = newStatus
	sheet.UpdatedBy = &actorUUID

	if err := qtx.Update(ctx, sheet); err != nil {
		s.logger.Error("transition take-on sheet persist failed",
			zap.String("sheet_id", id),
			zap.String("target_status", newStatus),
			zap.Error(err),
		)
		return TakeOnSheetResponse{}, mapRepositoryError(err)
	}

	if newStatus == StatusComplete && s.outbox != nil {
		if err := s.enqueueCompletedEvent(ctx, tx, sheet, actorID); err != nil {
			s.logger.Error("enqueue completed event failed",
				zap.String("sheet_id", id),
				zap.Error(err),
			)
			return TakeOnSheetResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition take-on sheet commit failed", zap.Error(err))
		return TakeOnSheetResponse{}, err
	}

	s.invalidateCounts(ctx, sheet.CompanyID.String())

	s.logger.Info("transition take-on sheet success",
		zap.String("sheet_id", id),
		zap.String("status", newStatus),
	)

	return mapToResponse(*sheet), nil
}

// CanEditSection is a pure lookup against the static role table.
func (s *service) CanEditSection(role, section, currentStatus string) bool {
	return s.table.CanEditSection(role, section, currentStatus)
}

// CanTransitionStatus first requires the move to be on the forward chain,
// then checks how far the role is trusted with it.
func (s *service) CanTransitionStatus(role, fromStatus, toStatus string) bool {
	if !isValidTransition(fromStatus, toStatus) {
		return false
	}

	switch s.table.Level(role) {
	case roles.TransitionAll:
		return true
	case roles.TransitionHRReview:
		return (fromStatus == StatusDraft && toStatus == StatusPendingHRReview) ||
			(fromStatus == StatusPendingHRReview && toStatus == StatusPendingITSetup)
	case roles.TransitionInitiate:
		return fromStatus == StatusDraft && toStatus == StatusPendingHRReview
	default:
		return false
	}
}

func (s *service) IsComplete(ctx context.Context, id string) (bool, error) {
	sheet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, mapRepositoryError(err)
	}
	return sheet.Status == StatusComplete, nil
}

func (s *service) CanCreateEmployee(ctx context.Context, id string) (EmployeeReadiness, error) {
	sheet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeReadiness{}, mapRepositoryError(err)
	}

	if sheet.Status != StatusComplete {
		return EmployeeReadiness{
			Reason: fmt.Sprintf("onboarding is not complete, current status is %s", sheet.Status),
		}, nil
	}
	if sheet.EmployeeID != nil {
		return EmployeeReadiness{
			Reason: fmt.Sprintf("an employee (%s) was already created from this sheet", sheet.EmployeeID.String()),
		}, nil
	}
	if sheet.PersonalDetails.FirstName == "" || sheet.PersonalDetails.LastName == "" || sheet.PersonalDetails.IDNumber == "" {
		return EmployeeReadiness{
			Reason: "personal details are missing first name, last name or ID number",
		}, nil
	}

	return EmployeeReadiness{CanCreate: true}, nil
}

func (s *service) LinkToEmployee(ctx context.Context, id, employeeID, actorID string) (TakeOnSheetResponse, error) {
	s.logger.Debug("link employee requested",
		zap.String("sheet_id", id),
		zap.String("employee_id", employeeID),
		zap.String("actor_id", actorID),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return TakeOnSheetResponse{}, takeonsheeterrors.ErrInvalidEmployeeID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TakeOnSheetResponse{}, takeonsheeterrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("link employee begin tx failed", zap.Error(err))
		return TakeOnSheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sheet, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TakeOnSheetResponse{}, mapRepositoryError(err)
	}

	if sheet.Status != StatusComplete {
		return TakeOnSheetResponse{}, takeonsheeterrors.LinkNotAllowed(sheet.Status)
	}
	// One employee per sheet. The stored id wins; the caller gets told whose.
	if sheet.EmployeeID != nil {
		return TakeOnSheetResponse{}, takeonsheeterrors.AlreadyLinked(sheet.EmployeeID.String())
	}

	sheet.EmployeeID = &employeeUUID
	sheet.UpdatedBy = &actorUUID

	if err := qtx.Update(ctx, sheet); err != nil {
		s.logger.Error("link employee persist failed", zap.Error(err))
		return TakeOnSheetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("link employee commit failed", zap.Error(err))
		return TakeOnSheetResponse{}, err
	}

	s.logger.Info("link employee success",
		zap.String("sheet_id", id),
		zap.String("employee_id", employeeID),
	)

	return mapToResponse(*sheet), nil
}

func (s *service) CountsByStatus(ctx context.Context, companyID string) (StatusCounts, error) {
	cacheKey := GetStatusCountsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var counts StatusCounts
			if json.Unmarshal([]byte(cached), &counts) == nil {
				return counts, nil
			}
		}
	}

	// Singleflight so a dashboard fan-out does not stampede the database.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		raw, err := s.repo.CountByStatus(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		counts := StatusCounts{
			Draft:           raw[StatusDraft],
			PendingHRReview: raw[StatusPendingHRReview],
			PendingITSetup:  raw[StatusPendingITSetup],
			Complete:        raw[StatusComplete],
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(counts); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 5*time.Minute)
			}
		}

		return counts, nil
	})

	if err != nil {
		return StatusCounts{}, err
	}

	return v.(StatusCounts), nil
}

func (s *service) enqueueCompletedEvent(ctx context.Context, tx *sql.Tx, sheet *TakeOnSheet, actorID string) error {
	event := events.TakeOnSheetCompletedEvent{
		EventType:   "take_on_sheet_completed",
		SheetID:     sheet.ID.String(),
		SheetNumber: sheet.SheetNumber,
		CompanyID:   sheet.CompanyID.String(),
		ChangedBy:   actorID,
		OccurredAt:  time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "take_on_sheet",
		AggregateID:   sheet.ID.String(),
		EventType:     event.EventType,
		Topic:         events.TakeOnSheetCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateCounts(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetStatusCountsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate status counts cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

// Shallow merges: a non-nil input field overwrites, an omitted field keeps
// the stored value.

func mergeEmploymentInfo(current EmploymentInfo, in *EmploymentInfoInput) EmploymentInfo {
	if in == nil {
		return current
	}
	if in.Position != nil {
		current.Position = *in.Position
	}
	if in.Department != nil {
		current.Department = *in.Department
	}
	if in.StartDate != nil {
		current.StartDate = *in.StartDate
	}
	if in.EmploymentType != nil {
		current.EmploymentType = *in.EmploymentType
	}
	if in.LineManager != nil {
		current.LineManager = *in.LineManager
	}
	if in.PayGrade != nil {
		current.PayGrade = *in.PayGrade
	}
	return current
}

func mergePersonalDetails(current PersonalDetails, in *PersonalDetailsInput) PersonalDetails {
	if in == nil {
		return current
	}
	if in.Title != nil {
		current.Title = *in.Title
	}
	if in.FirstName != nil {
		current.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		current.LastName = *in.LastName
	}
	if in.IDNumber != nil {
		current.IDNumber = *in.IDNumber
	}
	if in.Email != nil {
		current.Email = *in.Email
	}
	if in.Phone != nil {
		current.Phone = *in.Phone
	}
	if in.Country != nil {
		current.Country = *in.Country
	}
	if in.Address != nil {
		current.Address = *in.Address
	}
	return current
}

func mergeSystemAccess(current SystemAccess, in *SystemAccessInput) SystemAccess {
	if in == nil {
		return current
	}
	if in.RequestedRole != nil {
		current.RequestedRole = *in.RequestedRole
	}
	if in.Modules != nil {
		current.Modules = in.Modules
	}
	if in.EmailAccount != nil {
		current.EmailAccount = *in.EmailAccount
	}
	if in.EquipmentNotes != nil {
		current.EquipmentNotes = *in.EquipmentNotes
	}
	return current
}

func mapToResponse(sheet TakeOnSheet) TakeOnSheetResponse {
	resp := TakeOnSheetResponse{
		ID:              sheet.ID.String(),
		CompanyID:       sheet.CompanyID.String(),
		SheetNumber:     sheet.SheetNumber,
		Status:          sheet.Status,
		EmploymentInfo:  sheet.EmploymentInfo,
		PersonalDetails: sheet.PersonalDetails,
		SystemAccess:    sheet.SystemAccess,
		Documents:       sheet.Documents,
		CreatedBy:       sheet.CreatedBy.String(),
		CreatedAt:       sheet.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       sheet.UpdatedAt.Format(time.RFC3339),
	}

	resp.StatusHistory = make([]StatusChangeResponse, len(sheet.StatusHistory))
	for i, change := range sheet.StatusHistory {
		resp.StatusHistory[i] = StatusChangeResponse{
			FromStatus: change.FromStatus,
			ToStatus:   change.ToStatus,
			ChangedBy:  change.ChangedBy,
			ChangedAt:  change.ChangedAt.Format(time.RFC3339),
			Notes:      change.Notes,
		}
	}

	if sheet.AccessRequestID != nil {
		v := sheet.AccessRequestID.String()
		resp.AccessRequestID = &v
	}
	if sheet.EmployeeID != nil {
		v := sheet.EmployeeID.String()
		resp.EmployeeID = &v
	}
	if sheet.UpdatedBy != nil {
		v := sheet.UpdatedBy.String()
		resp.UpdatedBy = &v
	}
	return resp
}

func mapToListResponse(sheets []TakeOnSheet) []TakeOnSheetResponse {
	resp := make([]TakeOnSheetResponse, len(sheets))
	for i, sheet := range sheets {
		resp[i] = mapToResponse(sheet)
	}
	return resp
}
