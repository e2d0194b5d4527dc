package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-hradmin/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMalformedEvent marks a payload that can never be recorded no matter
// how often it is redelivered. Consumers commit these instead of retrying.
var ErrMalformedEvent = errors.New("malformed event payload")

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	RecordAccessRequestReviewed(ctx context.Context, event events.AccessRequestReviewedEvent) error
	RecordTakeOnSheetCompleted(ctx context.Context, event events.TakeOnSheetCompletedEvent) error
	ListByRecipient(ctx context.Context, email string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) RecordAccessRequestReviewed(ctx context.Context, event events.AccessRequestReviewedEvent) error {
	companyID, err := uuid.Parse(event.CompanyID)
	if err != nil {
		return fmt.Errorf("%w: invalid company id in reviewed event: %v", ErrMalformedEvent, err)
	}

	notifType := TypeAccessRequestApproved
	subject := "Your access request has been approved"
	body := "Your request for system access has been approved. You can now sign in with your registered email address."
	if event.Decision == "rejected" {
		notifType = TypeAccessRequestRejected
		subject = "Your access request has been rejected"
		body = "Your request for system access has been rejected. Contact your HR administrator for details."
	}

	n := &Notification{
		ID:             uuid.New(),
		CompanyID:      companyID,
		RecipientEmail: event.Email,
		Type:           notifType,
		Subject:        subject,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("record reviewed notification failed",
			zap.String("access_request_id", event.AccessRequestID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("reviewed notification recorded",
		zap.String("access_request_id", event.AccessRequestID),
		zap.String("decision", event.Decision),
	)
	return nil
}

func (s *service) RecordTakeOnSheetCompleted(ctx context.Context, event events.TakeOnSheetCompletedEvent) error {
	companyID, err := uuid.Parse(event.CompanyID)
	if err != nil {
		return fmt.Errorf("%w: invalid company id in completed event: %v", ErrMalformedEvent, err)
	}

	n := &Notification{
		ID:             uuid.New(),
		CompanyID:      companyID,
		RecipientEmail: "",
		Type:           TypeOnboardingCompleted,
		Subject:        fmt.Sprintf("Take-on sheet %s completed", event.SheetNumber),
		Body:           fmt.Sprintf("Take-on sheet %s has completed onboarding and is ready for employee creation.", event.SheetNumber),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("record completed notification failed",
			zap.String("sheet_id", event.SheetID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("completed notification recorded", zap.String("sheet_number", event.SheetNumber))
	return nil
}

func (s *service) ListByRecipient(ctx context.Context, email string) ([]NotificationResponse, error) {
	records, err := s.repo.FindAllByRecipient(ctx, email)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

func mapToResponse(record Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:             record.ID.String(),
		CompanyID:      record.CompanyID.String(),
		RecipientEmail: record.RecipientEmail,
		Type:           record.Type,
		Subject:        record.Subject,
		Body:           record.Body,
		CreatedAt:      record.CreatedAt.Format(time.RFC3339),
	}
	if record.ReadAt != nil {
		v := record.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
