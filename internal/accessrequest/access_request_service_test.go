package accessrequest

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"testing"

	accessrequesterrors "go-hradmin/internal/accessrequest/errors"
	"go-hradmin/internal/takeonsheet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn            func(tx *sql.Tx) Repository
	createFn            func(ctx context.Context, req *AccessRequest) error
	findByIDFn          func(ctx context.Context, id string) (*AccessRequest, error)
	findActiveByEmailFn func(ctx context.Context, email string) (*AccessRequest, error)
	findLatestByEmailFn func(ctx context.Context, email string) (*AccessRequest, error)
	findAllByStatusFn   func(ctx context.Context, status string) ([]AccessRequest, error)
	countByStatusFn     func(ctx context.Context, status string) (int64, error)
	updateFn            func(ctx context.Context, req *AccessRequest) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, req *AccessRequest) error {
	return f.createFn(ctx, req)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*AccessRequest, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindActiveByEmail(ctx context.Context, email string) (*AccessRequest, error) {
	return f.findActiveByEmailFn(ctx, email)
}
func (f *fakeRepo) FindLatestByEmail(ctx context.Context, email string) (*AccessRequest, error) {
	return f.findLatestByEmailFn(ctx, email)
}
func (f *fakeRepo) FindAllByStatus(ctx context.Context, status string) ([]AccessRequest, error) {
	return f.findAllByStatusFn(ctx, status)
}
func (f *fakeRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	return f.countByStatusFn(ctx, status)
}
func (f *fakeRepo) Update(ctx context.Context, req *AccessRequest) error {
	return f.updateFn(ctx, req)
}

// fakeSheetRepo only needs the back-reference lookup; the rest is unused by
// this service.
type fakeSheetRepo struct {
	takeonsheet.Repository
	findLatestByAccessRequestIDFn func(ctx context.Context, accessRequestID string) (*takeonsheet.TakeOnSheet, error)
}

func (f *fakeSheetRepo) FindLatestByAccessRequestID(ctx context.Context, accessRequestID string) (*takeonsheet.TakeOnSheet, error) {
	return f.findLatestByAccessRequestIDFn(ctx, accessRequestID)
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestService_Create_NormalizesEmailAndHashesPassword(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved AccessRequest
	repo := &fakeRepo{}
	repo.findActiveByEmailFn = func(ctx context.Context, email string) (*AccessRequest, error) {
		assert.Equal(t, "jane.doe@example.com", email)
		return nil, gorm.ErrRecordNotFound
	}
	repo.createFn = func(ctx context.Context, req *AccessRequest) error { saved = *req; return nil }

	svc := NewService(db, repo, &fakeSheetRepo{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateAccessRequestRequest{
		Email:     "  Jane.Doe@Example.COM ",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "password",
	})
	assert.NoError(t, err)

	assert.Equal(t, "jane.doe@example.com", resp.Email)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, sha256Hex("password"), saved.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicateActiveEmail(t *testing.T) {
	cases := []struct {
		name     string
		existing string
		wantErr  error
	}{
		{"pending duplicate", StatusPending, accessrequesterrors.ErrRequestAlreadyPending},
		{"approved duplicate", StatusApproved, accessrequesterrors.ErrAccountAlreadyExists},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, _, _ := sqlmock.New()
			defer db.Close()

			repo := &fakeRepo{}
			repo.findActiveByEmailFn = func(ctx context.Context, email string) (*AccessRequest, error) {
				return &AccessRequest{ID: uuid.New(), Email: email, Status: tc.existing}, nil
			}

			svc := NewService(db, repo, &fakeSheetRepo{})

			_, err := svc.Create(context.Background(), CreateAccessRequestRequest{
				Email: "jane.doe@example.com", FirstName: "Jane", LastName: "Doe", Password: "password",
			})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestService_Create_RejectedEmailMayReapply(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	created := false
	repo := &fakeRepo{}
	// A rejected record is not active, so the lookup misses.
	repo.findActiveByEmailFn = func(ctx context.Context, email string) (*AccessRequest, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.createFn = func(ctx context.Context, req *AccessRequest) error { created = true; return nil }

	svc := NewService(db, repo, &fakeSheetRepo{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Create(context.Background(), CreateAccessRequestRequest{
		Email: "jane.doe@example.com", FirstName: "Jane", LastName: "Doe", Password: "password",
	})
	assert.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByEmail_PrefersActiveThenLatest(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rejected := AccessRequest{ID: uuid.New(), Email: "jane.doe@example.com", Status: StatusRejected}
	repo := &fakeRepo{}
	repo.findActiveByEmailFn = func(ctx context.Context, email string) (*AccessRequest, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.findLatestByEmailFn = func(ctx context.Context, email string) (*AccessRequest, error) {
		return &rejected, nil
	}

	svc := NewService(db, repo, &fakeSheetRepo{})

	resp, err := svc.GetByEmail(context.Background(), "Jane.Doe@Example.com")
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, resp.Status)

	repo.findLatestByEmailFn = func(ctx context.Context, email string) (*AccessRequest, error) {
		return nil, gorm.ErrRecordNotFound
	}
	_, err = svc.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, accessrequesterrors.ErrRequestNotFound)
}

func TestService_Approve_BlockedByIncompleteOnboarding(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	sheetID := uuid.New()
	stored := AccessRequest{
		ID:            uuid.New(),
		Email:         "jane.doe@example.com",
		Status:        StatusPending,
		TakeOnSheetID: &sheetID,
	}
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*AccessRequest, error) {
		rec := stored
		return &rec, nil
	}
	repo.updateFn = func(ctx context.Context, req *AccessRequest) error { stored = *req; return nil }

	sheets := &fakeSheetRepo{}
	sheets.findLatestByAccessRequestIDFn = func(ctx context.Context, accessRequestID string) (*takeonsheet.TakeOnSheet, error) {
		return &takeonsheet.TakeOnSheet{ID: sheetID, Status: takeonsheet.StatusPendingITSetup}, nil
	}

	svc := NewService(db, repo, sheets)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Approve(context.Background(), stored.ID.String(), uuid.New().String(), ApproveAccessRequestRequest{
		AssignedRole:      "HR Manager",
		AssignedCompanyID: uuid.New().String(),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), takeonsheet.StatusPendingITSetup)
	assert.Equal(t, StatusPending, stored.Status, "request must stay pending")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve_OverrideSkipsOnboardingGate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	sheetID := uuid.New()
	stored := AccessRequest{
		ID:            uuid.New(),
		Email:         "jane.doe@example.com",
		Status:        StatusPending,
		TakeOnSheetID: &sheetID,
	}
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*AccessRequest, error) {
		rec := stored
		return &rec, nil
	}
	repo.updateFn = func(ctx context.Context, req *AccessRequest) error { stored = *req; return nil }

	sheets := &fakeSheetRepo{}
	sheets.findLatestByAccessRequestIDFn = func(ctx context.Context, accessRequestID string) (*takeonsheet.TakeOnSheet, error) {
		t.Fatal("sheet lookup must be skipped when override is set")
		return nil, nil
	}

	svc := NewService(db, repo, sheets)

	reviewerID := uuid.New().String()
	companyID := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Approve(context.Background(), stored.ID.String(), reviewerID, ApproveAccessRequestRequest{
		AssignedRole:       "HR Manager",
		AssignedCompanyID:  companyID,
		OverrideOnboarding: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.Equal(t, reviewerID, *resp.ReviewedBy)
	assert.Equal(t, "HR Manager", *resp.AssignedRole)
	assert.NotNil(t, resp.ReviewedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve_CompleteSheetPassesGate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	sheetID := uuid.New()
	stored := AccessRequest{
		ID:            uuid.New(),
		Email:         "jane.doe@example.com",
		Status:        StatusPending,
		TakeOnSheetID: &sheetID,
	}
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*AccessRequest, error) {
		rec := stored
		return &rec, nil
	}
	repo.updateFn = func(ctx context.Context, req *AccessRequest) error { stored = *req; return nil }

	sheets := &fakeSheetRepo{}
	sheets.findLatestByAccessRequestIDFn = func(ctx context.Context, accessRequestID string) (*takeonsheet.TakeOnSheet, error) {
		return &takeonsheet.TakeOnSheet{ID: sheetID, Status: takeonsheet.StatusComplete}, nil
	}

	svc := NewService(db, repo, sheets)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Approve(context.Background(), stored.ID.String(), uuid.New().String(), ApproveAccessRequestRequest{
		AssignedRole:      "Employee",
		AssignedCompanyID: uuid.New().String(),
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ApproveAndReject_RequirePending(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	stored := AccessRequest{ID: uuid.New(), Email: "jane.doe@example.com", Status: StatusApproved}
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*AccessRequest, error) {
		rec := stored
		return &rec, nil
	}

	svc := NewService(db, repo, &fakeSheetRepo{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Approve(context.Background(), stored.ID.String(), uuid.New().String(), ApproveAccessRequestRequest{
		AssignedRole:      "Employee",
		AssignedCompanyID: uuid.New().String(),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), StatusApproved)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Reject(context.Background(), stored.ID.String(), uuid.New().String())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Reject_SetsReviewFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	stored := AccessRequest{ID: uuid.New(), Email: "jane.doe@example.com", Status: StatusPending}
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*AccessRequest, error) {
		rec := stored
		return &rec, nil
	}
	repo.updateFn = func(ctx context.Context, req *AccessRequest) error { stored = *req; return nil }

	svc := NewService(db, repo, &fakeSheetRepo{})

	reviewerID := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Reject(context.Background(), stored.ID.String(), reviewerID)
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, resp.Status)
	assert.Equal(t, reviewerID, *resp.ReviewedBy)
	assert.NotNil(t, resp.ReviewedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CountPending(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.countByStatusFn = func(ctx context.Context, status string) (int64, error) {
		assert.Equal(t, StatusPending, status)
		return 4, nil
	}

	svc := NewService(db, repo, &fakeSheetRepo{})

	count, err := svc.CountPending(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestService_ListByStatus_UnknownStatus(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeSheetRepo{})

	_, err := svc.ListByStatus(context.Background(), "archived")
	assert.True(t, errors.Is(err, accessrequesterrors.ErrUnknownStatus))
}
