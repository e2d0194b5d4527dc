package approval

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"go-hradmin/internal/accessrequest"
	"go-hradmin/internal/events"
	"go-hradmin/internal/identity"
	"go-hradmin/internal/messaging/kafka"
	"go-hradmin/internal/notification"
	"go-hradmin/internal/takeonsheet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRequestService struct {
	accessrequest.Service
	approveFn func(ctx context.Context, id, reviewerID string, req accessrequest.ApproveAccessRequestRequest) (accessrequest.AccessRequestResponse, error)
	rejectFn  func(ctx context.Context, id, reviewerID string) (accessrequest.AccessRequestResponse, error)
}

func (f *fakeRequestService) Approve(ctx context.Context, id, reviewerID string, req accessrequest.ApproveAccessRequestRequest) (accessrequest.AccessRequestResponse, error) {
	return f.approveFn(ctx, id, reviewerID, req)
}
func (f *fakeRequestService) Reject(ctx context.Context, id, reviewerID string) (accessrequest.AccessRequestResponse, error) {
	return f.rejectFn(ctx, id, reviewerID)
}

type fakeRequestRepo struct {
	accessrequest.Repository
	findByIDFn func(ctx context.Context, id string) (*accessrequest.AccessRequest, error)
}

func (f *fakeRequestRepo) FindByID(ctx context.Context, id string) (*accessrequest.AccessRequest, error) {
	return f.findByIDFn(ctx, id)
}

type fakeSheetRepo struct {
	takeonsheet.Repository
	findLatestByAccessRequestIDFn func(ctx context.Context, accessRequestID string) (*takeonsheet.TakeOnSheet, error)
}

func (f *fakeSheetRepo) FindLatestByAccessRequestID(ctx context.Context, accessRequestID string) (*takeonsheet.TakeOnSheet, error) {
	return f.findLatestByAccessRequestIDFn(ctx, accessRequestID)
}

type fakeSagaRepo struct {
	created   []*ApprovalSaga
	steps     []string
	completed []string
	failed    map[string]string
}

func newFakeSagaRepo() *fakeSagaRepo {
	return &fakeSagaRepo{failed: map[string]string{}}
}

func (f *fakeSagaRepo) Create(ctx context.Context, saga *ApprovalSaga) error {
	f.created = append(f.created, saga)
	return nil
}
func (f *fakeSagaRepo) AdvanceStep(ctx context.Context, id string, step string) error {
	f.steps = append(f.steps, step)
	return nil
}
func (f *fakeSagaRepo) SetExternalID(ctx context.Context, id string, externalID string) error {
	return nil
}
func (f *fakeSagaRepo) MarkCompleted(ctx context.Context, id string) error {
	f.completed = append(f.completed, id)
	return nil
}
func (f *fakeSagaRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	f.failed[id] = reason
	return nil
}
func (f *fakeSagaRepo) FindLatestByAccessRequestID(ctx context.Context, accessRequestID string) (*ApprovalSaga, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeProvider struct {
	createFn func(ctx context.Context, req identity.CreateIdentityRequest) (identity.CreateIdentityResponse, error)
}

func (f *fakeProvider) CreateIdentity(ctx context.Context, req identity.CreateIdentityRequest) (identity.CreateIdentityResponse, error) {
	return f.createFn(ctx, req)
}

type fakeProfileStore struct {
	upserted []*identity.UserProfile
	fail     error
}

func (f *fakeProfileStore) UpsertProfile(ctx context.Context, profile *identity.UserProfile) error {
	if f.fail != nil {
		return f.fail
	}
	f.upserted = append(f.upserted, profile)
	return nil
}
func (f *fakeProfileStore) FindByEmail(ctx context.Context, email string) (*identity.UserProfile, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func pendingRequest() *accessrequest.AccessRequest {
	return &accessrequest.AccessRequest{
		ID:           uuid.New(),
		Email:        "jane.doe@example.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		PasswordHash: "a-stored-hash",
		Status:       accessrequest.StatusPending,
	}
}

func TestService_Approve_RunsSagaToCompletion(t *testing.T) {
	record := pendingRequest()
	companyID := uuid.New().String()

	repo := &fakeRequestRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*accessrequest.AccessRequest, error) {
		return record, nil
	}

	requests := &fakeRequestService{}
	requests.approveFn = func(ctx context.Context, id, reviewerID string, req accessrequest.ApproveAccessRequestRequest) (accessrequest.AccessRequestResponse, error) {
		return accessrequest.AccessRequestResponse{
			ID:     record.ID.String(),
			Email:  record.Email,
			Status: accessrequest.StatusApproved,
		}, nil
	}

	provider := &fakeProvider{}
	provider.createFn = func(ctx context.Context, req identity.CreateIdentityRequest) (identity.CreateIdentityResponse, error) {
		assert.Equal(t, record.Email, req.Email)
		assert.Equal(t, "a-stored-hash", req.PasswordHash)
		return identity.CreateIdentityResponse{ExternalID: "idp-0042"}, nil
	}

	sagas := newFakeSagaRepo()
	profiles := &fakeProfileStore{}
	outbox := &fakeOutbox{}

	svc := NewService(requests, repo, &fakeSheetRepo{}, sagas, provider, profiles, outbox)

	resp, err := svc.Approve(context.Background(), record.ID.String(), uuid.New().String(), accessrequest.ApproveAccessRequestRequest{
		AssignedRole:      "HR Manager",
		AssignedCompanyID: companyID,
	})
	assert.NoError(t, err)

	assert.Equal(t, accessrequest.StatusApproved, resp.Status)
	assert.Len(t, sagas.created, 1)
	assert.Equal(t, []string{StepIdentityCreated, StepProfileUpserted}, sagas.steps)
	assert.Len(t, sagas.completed, 1)
	assert.Empty(t, sagas.failed)

	if assert.Len(t, profiles.upserted, 1) {
		assert.Equal(t, "idp-0042", profiles.upserted[0].ExternalID)
		assert.Equal(t, "HR Manager", profiles.upserted[0].Role)
	}
	if assert.Len(t, outbox.created, 1) {
		assert.Equal(t, "access_request_reviewed", outbox.created[0].EventType)
		assert.Contains(t, string(outbox.created[0].Payload), `"approved"`)
	}
}

func TestService_Approve_ProviderFailureLeavesRequestPending(t *testing.T) {
	record := pendingRequest()

	repo := &fakeRequestRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*accessrequest.AccessRequest, error) {
		return record, nil
	}

	requests := &fakeRequestService{}
	requests.approveFn = func(ctx context.Context, id, reviewerID string, req accessrequest.ApproveAccessRequestRequest) (accessrequest.AccessRequestResponse, error) {
		t.Fatal("request must not be approved after provisioning fails")
		return accessrequest.AccessRequestResponse{}, nil
	}

	provider := &fakeProvider{}
	provider.createFn = func(ctx context.Context, req identity.CreateIdentityRequest) (identity.CreateIdentityResponse, error) {
		return identity.CreateIdentityResponse{}, errors.New("identity provider unavailable")
	}

	sagas := newFakeSagaRepo()
	outbox := &fakeOutbox{}

	svc := NewService(requests, repo, &fakeSheetRepo{}, sagas, provider, &fakeProfileStore{}, outbox)

	_, err := svc.Approve(context.Background(), record.ID.String(), uuid.New().String(), accessrequest.ApproveAccessRequestRequest{
		AssignedRole:      "Employee",
		AssignedCompanyID: uuid.New().String(),
	})
	assert.Error(t, err)

	assert.Len(t, sagas.created, 1)
	assert.Len(t, sagas.failed, 1)
	assert.Empty(t, sagas.completed)
	assert.Empty(t, outbox.created, "no decision event without a decision")
}

func TestService_Approve_GateBlocksBeforeSagaStarts(t *testing.T) {
	record := pendingRequest()
	sheetID := uuid.New()
	record.TakeOnSheetID = &sheetID

	repo := &fakeRequestRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*accessrequest.AccessRequest, error) {
		return record, nil
	}

	sheets := &fakeSheetRepo{}
	sheets.findLatestByAccessRequestIDFn = func(ctx context.Context, accessRequestID string) (*takeonsheet.TakeOnSheet, error) {
		return &takeonsheet.TakeOnSheet{ID: sheetID, Status: takeonsheet.StatusPendingHRReview}, nil
	}

	provider := &fakeProvider{}
	provider.createFn = func(ctx context.Context, req identity.CreateIdentityRequest) (identity.CreateIdentityResponse, error) {
		t.Fatal("no external identity may be created while onboarding is incomplete")
		return identity.CreateIdentityResponse{}, nil
	}

	sagas := newFakeSagaRepo()

	svc := NewService(&fakeRequestService{}, repo, sheets, sagas, provider, &fakeProfileStore{}, &fakeOutbox{})

	_, err := svc.Approve(context.Background(), record.ID.String(), uuid.New().String(), accessrequest.ApproveAccessRequestRequest{
		AssignedRole:      "Employee",
		AssignedCompanyID: uuid.New().String(),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), takeonsheet.StatusPendingHRReview)
	assert.Empty(t, sagas.created, "gate failures must not open a saga")
}

func TestService_Approve_ProfileFailureFailsSaga(t *testing.T) {
	record := pendingRequest()

	repo := &fakeRequestRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*accessrequest.AccessRequest, error) {
		return record, nil
	}

	provider := &fakeProvider{}
	provider.createFn = func(ctx context.Context, req identity.CreateIdentityRequest) (identity.CreateIdentityResponse, error) {
		return identity.CreateIdentityResponse{ExternalID: "idp-0099"}, nil
	}

	sagas := newFakeSagaRepo()
	profiles := &fakeProfileStore{fail: errors.New("profiles table unavailable")}

	svc := NewService(&fakeRequestService{}, repo, &fakeSheetRepo{}, sagas, provider, profiles, &fakeOutbox{})

	_, err := svc.Approve(context.Background(), record.ID.String(), uuid.New().String(), accessrequest.ApproveAccessRequestRequest{
		AssignedRole:      "Employee",
		AssignedCompanyID: uuid.New().String(),
	})
	assert.Error(t, err)
	assert.Len(t, sagas.failed, 1)
	assert.Equal(t, []string{StepIdentityCreated}, sagas.steps)
}

func TestService_Reject_EmitsReviewedEvent(t *testing.T) {
	requests := &fakeRequestService{}
	requests.rejectFn = func(ctx context.Context, id, reviewerID string) (accessrequest.AccessRequestResponse, error) {
		return accessrequest.AccessRequestResponse{
			ID:     id,
			Email:  "jane.doe@example.com",
			Status: accessrequest.StatusRejected,
		}, nil
	}

	outbox := &fakeOutbox{}
	svc := NewService(requests, &fakeRequestRepo{}, &fakeSheetRepo{}, newFakeSagaRepo(), &fakeProvider{}, &fakeProfileStore{}, outbox)

	reviewerCompanyID := uuid.New().String()
	resp, err := svc.Reject(context.Background(), uuid.New().String(), uuid.New().String(), reviewerCompanyID)
	assert.NoError(t, err)
	assert.Equal(t, accessrequest.StatusRejected, resp.Status)

	if assert.Len(t, outbox.created, 1) {
		var event events.AccessRequestReviewedEvent
		assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
		assert.Equal(t, "rejected", event.Decision)
		// Rejection assigns no company to the applicant; the event carries
		// the reviewer's company so the notification can be recorded.
		assert.Equal(t, reviewerCompanyID, event.CompanyID)
	}
}

type fakeNotificationRepo struct {
	created []*notification.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	f.created = append(f.created, n)
	return nil
}
func (f *fakeNotificationRepo) FindAllByRecipient(ctx context.Context, email string) ([]notification.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error { return nil }

func TestService_Reject_EventIsRecordableAsNotification(t *testing.T) {
	requests := &fakeRequestService{}
	requests.rejectFn = func(ctx context.Context, id, reviewerID string) (accessrequest.AccessRequestResponse, error) {
		return accessrequest.AccessRequestResponse{
			ID:     id,
			Email:  "jane.doe@example.com",
			Status: accessrequest.StatusRejected,
		}, nil
	}

	outbox := &fakeOutbox{}
	svc := NewService(requests, &fakeRequestRepo{}, &fakeSheetRepo{}, newFakeSagaRepo(), &fakeProvider{}, &fakeProfileStore{}, outbox)

	_, err := svc.Reject(context.Background(), uuid.New().String(), uuid.New().String(), uuid.New().String())
	assert.NoError(t, err)

	var event events.AccessRequestReviewedEvent
	if assert.Len(t, outbox.created, 1) {
		assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
	}

	// Feed the emitted payload straight into the consumer-side service.
	notifRepo := &fakeNotificationRepo{}
	notifSvc := notification.NewService(notifRepo)
	assert.NoError(t, notifSvc.RecordAccessRequestReviewed(context.Background(), event))

	if assert.Len(t, notifRepo.created, 1) {
		assert.Equal(t, notification.TypeAccessRequestRejected, notifRepo.created[0].Type)
		assert.Equal(t, "jane.doe@example.com", notifRepo.created[0].RecipientEmail)
	}
}
