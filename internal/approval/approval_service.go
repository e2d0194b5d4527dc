package approval

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hradmin/internal/accessrequest"
	accessrequesterrors "go-hradmin/internal/accessrequest/errors"
	"go-hradmin/internal/events"
	"go-hradmin/internal/identity"
	"go-hradmin/internal/messaging/kafka"
	"go-hradmin/internal/shared/contextutil"
	"go-hradmin/internal/takeonsheet"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Service interface {
	Approve(ctx context.Context, id, reviewerID string, req accessrequest.ApproveAccessRequestRequest) (accessrequest.AccessRequestResponse, error)
	Reject(ctx context.Context, id, reviewerID, reviewerCompanyID string) (accessrequest.AccessRequestResponse, error)
}

type service struct {
	requests     accessrequest.Service
	requestsRepo accessrequest.Repository
	sheets       takeonsheet.Repository
	sagas        SagaRepository
	provider     identity.Provider
	profiles     identity.ProfileStore
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(
	requests accessrequest.Service,
	requestsRepo accessrequest.Repository,
	sheets takeonsheet.Repository,
	sagas SagaRepository,
	provider identity.Provider,
	profiles identity.ProfileStore,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	return &service{
		requests:     requests,
		requestsRepo: requestsRepo,
		sheets:       sheets,
		sagas:        sagas,
		provider:     provider,
		profiles:     profiles,
		outbox:       outbox,
		logger:       l,
	}
}

// Approve runs the provisioning saga: validate, create the external
// identity, upsert the local profile, then flip the request to approved.
// The record is only mutated in the final step, so a crash mid-saga leaves
// a pending request plus a saga row pointing at the step that failed.
func (s *service) Approve(
	ctx context.Context,
	id, reviewerID string,
	req accessrequest.ApproveAccessRequestRequest,
) (accessrequest.AccessRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Info("approval saga requested",
		zap.String("request_id", rid),
		zap.String("access_request_id", id),
		zap.Bool("override_onboarding", req.OverrideOnboarding),
	)

	record, err := s.requestsRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return accessrequest.AccessRequestResponse{}, accessrequesterrors.ErrRequestNotFound
		}
		return accessrequest.AccessRequestResponse{}, err
	}
	if record.Status != accessrequest.StatusPending {
		return accessrequest.AccessRequestResponse{}, accessrequesterrors.RequestNotPending(record.Status)
	}

	// Gate before provisioning anything external; the approve step
	// re-checks inside its transaction to cover the race.
	if record.TakeOnSheetID != nil && !req.OverrideOnboarding {
		sheet, err := s.sheets.FindLatestByAccessRequestID(ctx, id)
		switch {
		case err == nil:
			if sheet.Status != takeonsheet.StatusComplete {
				return accessrequest.AccessRequestResponse{}, accessrequesterrors.OnboardingIncomplete(sheet.Status)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Dangling reference, nothing to gate on.
		default:
			return accessrequest.AccessRequestResponse{}, err
		}
	}

	saga := &ApprovalSaga{
		ID:              uuid.New(),
		AccessRequestID: record.ID,
		Step:            StepStarted,
		Status:          SagaStatusRunning,
	}
	if err := s.sagas.Create(ctx, saga); err != nil {
		s.logger.Error("create approval saga failed", zap.Error(err))
		return accessrequest.AccessRequestResponse{}, err
	}
	sagaID := saga.ID.String()

	identityResp, err := s.provider.CreateIdentity(ctx, identity.CreateIdentityRequest{
		Email:        record.Email,
		FirstName:    record.FirstName,
		LastName:     record.LastName,
		PasswordHash: record.PasswordHash,
		Role:         req.AssignedRole,
		CompanyID:    req.AssignedCompanyID,
	})
	if err != nil {
		s.failSaga(ctx, sagaID, err)
		return accessrequest.AccessRequestResponse{}, err
	}
	if err := s.sagas.SetExternalID(ctx, sagaID, identityResp.ExternalID); err != nil {
		s.logger.Warn("record saga external id failed", zap.String("saga_id", sagaID), zap.Error(err))
	}
	if err := s.sagas.AdvanceStep(ctx, sagaID, StepIdentityCreated); err != nil {
		s.logger.Warn("advance saga step failed", zap.String("saga_id", sagaID), zap.Error(err))
	}

	companyUUID, err := uuid.Parse(req.AssignedCompanyID)
	if err != nil {
		s.failSaga(ctx, sagaID, err)
		return accessrequest.AccessRequestResponse{}, accessrequesterrors.ErrInvalidCompanyID
	}
	var employeeUUID *uuid.UUID
	if req.LinkedEmployeeID != nil && *req.LinkedEmployeeID != "" {
		parsed, err := uuid.Parse(*req.LinkedEmployeeID)
		if err != nil {
			s.failSaga(ctx, sagaID, err)
			return accessrequest.AccessRequestResponse{}, accessrequesterrors.ErrInvalidRequestID
		}
		employeeUUID = &parsed
	}

	if err := s.profiles.UpsertProfile(ctx, &identity.UserProfile{
		ID:         uuid.New(),
		ExternalID: identityResp.ExternalID,
		Email:      record.Email,
		FirstName:  record.FirstName,
		LastName:   record.LastName,
		Role:       req.AssignedRole,
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
	}); err != nil {
		s.failSaga(ctx, sagaID, err)
		return accessrequest.AccessRequestResponse{}, err
	}
	if err := s.sagas.AdvanceStep(ctx, sagaID, StepProfileUpserted); err != nil {
		s.logger.Warn("advance saga step failed", zap.String("saga_id", sagaID), zap.Error(err))
	}

	resp, err := s.requests.Approve(ctx, id, reviewerID, req)
	if err != nil {
		s.failSaga(ctx, sagaID, err)
		return accessrequest.AccessRequestResponse{}, err
	}

	if err := s.sagas.MarkCompleted(ctx, sagaID); err != nil {
		s.logger.Warn("mark saga completed failed", zap.String("saga_id", sagaID), zap.Error(err))
	}

	s.emitReviewedEvent(ctx, resp, "approved", reviewerID, req.AssignedCompanyID)

	s.logger.Info("approval saga completed",
		zap.String("request_id", rid),
		zap.String("access_request_id", id),
		zap.String("saga_id", sagaID),
	)

	return resp, nil
}

// Reject carries the reviewer's own company on the event: rejection never
// assigns one to the applicant, and the notification record is scoped to
// the company that made the decision.
func (s *service) Reject(ctx context.Context, id, reviewerID, reviewerCompanyID string) (accessrequest.AccessRequestResponse, error) {
	resp, err := s.requests.Reject(ctx, id, reviewerID)
	if err != nil {
		return accessrequest.AccessRequestResponse{}, err
	}

	s.emitReviewedEvent(ctx, resp, "rejected", reviewerID, reviewerCompanyID)

	return resp, nil
}

func (s *service) failSaga(ctx context.Context, sagaID string, cause error) {
	s.logger.Error("approval saga failed", zap.String("saga_id", sagaID), zap.Error(cause))
	if err := s.sagas.MarkFailed(ctx, sagaID, cause.Error()); err != nil {
		s.logger.Warn("mark saga failed errored", zap.String("saga_id", sagaID), zap.Error(err))
	}
}

// emitReviewedEvent is fire-and-forget: the decision stands even when the
// notification record cannot be queued.
func (s *service) emitReviewedEvent(
	ctx context.Context,
	resp accessrequest.AccessRequestResponse,
	decision, reviewerID, companyID string,
) {
	event := events.AccessRequestReviewedEvent{
		EventType:       "access_request_reviewed",
		AccessRequestID: resp.ID,
		Email:           resp.Email,
		Decision:        decision,
		ReviewedBy:      reviewerID,
		CompanyID:       companyID,
		OccurredAt:      time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("marshal reviewed event failed", zap.Error(err))
		return
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "access_request",
		AggregateID:   resp.ID,
		EventType:     event.EventType,
		Topic:         events.AccessRequestReviewedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}

	if err := s.outbox.Create(ctx, outboxEvent); err != nil {
		s.logger.Warn("enqueue reviewed event failed",
			zap.String("access_request_id", resp.ID),
			zap.Error(err),
		)
	}
}
