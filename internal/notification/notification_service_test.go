package notification

import (
	"context"
	"testing"
	"time"

	"go-hradmin/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	created            []*Notification
	findAllByRecipient func(ctx context.Context, email string) ([]Notification, error)
	markReadFn         func(ctx context.Context, id string) error
}

func (f *fakeRepo) Create(ctx context.Context, n *Notification) error {
	f.created = append(f.created, n)
	return nil
}
func (f *fakeRepo) FindAllByRecipient(ctx context.Context, email string) ([]Notification, error) {
	return f.findAllByRecipient(ctx, email)
}
func (f *fakeRepo) MarkRead(ctx context.Context, id string) error {
	return f.markReadFn(ctx, id)
}

func TestService_RecordAccessRequestReviewed(t *testing.T) {
	cases := []struct {
		name        string
		decision    string
		wantType    string
		wantSubject string
	}{
		{"approved decision", "approved", TypeAccessRequestApproved, "Your access request has been approved"},
		{"rejected decision", "rejected", TypeAccessRequestRejected, "Your access request has been rejected"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := NewService(repo)

			err := svc.RecordAccessRequestReviewed(context.Background(), events.AccessRequestReviewedEvent{
				EventType:       "access_request_reviewed",
				AccessRequestID: uuid.New().String(),
				Email:           "jane.doe@example.com",
				Decision:        tc.decision,
				ReviewedBy:      uuid.New().String(),
				CompanyID:       uuid.New().String(),
				OccurredAt:      time.Now().UTC(),
			})
			assert.NoError(t, err)

			if assert.Len(t, repo.created, 1) {
				assert.Equal(t, tc.wantType, repo.created[0].Type)
				assert.Equal(t, tc.wantSubject, repo.created[0].Subject)
				assert.Equal(t, "jane.doe@example.com", repo.created[0].RecipientEmail)
			}
		})
	}
}

func TestService_RecordAccessRequestReviewed_InvalidCompanyID(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.RecordAccessRequestReviewed(context.Background(), events.AccessRequestReviewedEvent{
		Email:     "jane.doe@example.com",
		Decision:  "approved",
		CompanyID: "not-a-uuid",
	})
	assert.ErrorIs(t, err, ErrMalformedEvent, "consumers commit on this error instead of redelivering")
	assert.Empty(t, repo.created)
}

func TestService_RecordTakeOnSheetCompleted(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.RecordTakeOnSheetCompleted(context.Background(), events.TakeOnSheetCompletedEvent{
		EventType:   "take_on_sheet_completed",
		SheetID:     uuid.New().String(),
		SheetNumber: "TOS-000042",
		CompanyID:   uuid.New().String(),
		ChangedBy:   uuid.New().String(),
		OccurredAt:  time.Now().UTC(),
	})
	assert.NoError(t, err)

	if assert.Len(t, repo.created, 1) {
		assert.Equal(t, TypeOnboardingCompleted, repo.created[0].Type)
		assert.Contains(t, repo.created[0].Subject, "TOS-000042")
	}
}

func TestService_ListByRecipient(t *testing.T) {
	readAt := time.Now().UTC()
	repo := &fakeRepo{}
	repo.findAllByRecipient = func(ctx context.Context, email string) ([]Notification, error) {
		return []Notification{
			{
				ID:             uuid.New(),
				CompanyID:      uuid.New(),
				RecipientEmail: email,
				Type:           TypeAccessRequestApproved,
				Subject:        "Your access request has been approved",
				CreatedAt:      time.Now().UTC(),
				ReadAt:         &readAt,
			},
		}, nil
	}
	svc := NewService(repo)

	resp, err := svc.ListByRecipient(context.Background(), "jane.doe@example.com")
	assert.NoError(t, err)
	if assert.Len(t, resp, 1) {
		assert.Equal(t, "jane.doe@example.com", resp[0].RecipientEmail)
		assert.NotNil(t, resp[0].ReadAt)
	}
}
