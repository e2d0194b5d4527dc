package approval_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hradmin/internal/accessrequest"
	accessrequesterrors "go-hradmin/internal/accessrequest/errors"
	"go-hradmin/internal/approval"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	approveFn func(ctx context.Context, id, reviewerID string, req accessrequest.ApproveAccessRequestRequest) (accessrequest.AccessRequestResponse, error)
	rejectFn  func(ctx context.Context, id, reviewerID, reviewerCompanyID string) (accessrequest.AccessRequestResponse, error)
}

func (f *fakeService) Approve(ctx context.Context, id, reviewerID string, req accessrequest.ApproveAccessRequestRequest) (accessrequest.AccessRequestResponse, error) {
	return f.approveFn(ctx, id, reviewerID, req)
}
func (f *fakeService) Reject(ctx context.Context, id, reviewerID, reviewerCompanyID string) (accessrequest.AccessRequestResponse, error) {
	return f.rejectFn(ctx, id, reviewerID, reviewerCompanyID)
}

func newTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestHandler_Approve_CompletesIdempotencyProtocol(t *testing.T) {
	requestID := uuid.New().String()
	resp := accessrequest.AccessRequestResponse{
		ID:     requestID,
		Email:  "jane.doe@example.com",
		Status: accessrequest.StatusApproved,
	}

	svc := &fakeService{}
	svc.approveFn = func(ctx context.Context, id, reviewerID string, req accessrequest.ApproveAccessRequestRequest) (accessrequest.AccessRequestResponse, error) {
		return resp, nil
	}

	rdb, mock := redismock.NewClientMock()
	h := approval.NewHandlerWithRedis(svc, rdb)

	cacheKey := "idemp:/api/v1/access-requests/:id/approve:user-1:key-1"
	lockKey := cacheKey + ":lock"
	payload, _ := json.Marshal(resp)
	mock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(lockKey).SetVal(1)

	body := `{"assigned_role":"HR Manager","assigned_company_id":"` + uuid.New().String() + `"}`
	c, w := newTestContext(http.MethodPost, "/api/v1/access-requests/"+requestID+"/approve", body)
	c.Params = gin.Params{{Key: "id", Value: requestID}}
	c.Set("user_id", "user-1")
	c.Set("idempotency_cache_key", cacheKey)
	c.Set("idempotency_lock_key", lockKey)

	h.Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet(), "lock must be released and the success payload cached")
}

func TestHandler_Approve_FailureReleasesLockWithoutCaching(t *testing.T) {
	svc := &fakeService{}
	svc.approveFn = func(ctx context.Context, id, reviewerID string, req accessrequest.ApproveAccessRequestRequest) (accessrequest.AccessRequestResponse, error) {
		return accessrequest.AccessRequestResponse{}, accessrequesterrors.RequestNotPending(accessrequest.StatusApproved)
	}

	rdb, mock := redismock.NewClientMock()
	h := approval.NewHandlerWithRedis(svc, rdb)

	lockKey := "idemp:/api/v1/access-requests/:id/approve:user-1:key-2:lock"
	mock.ExpectDel(lockKey).SetVal(1)

	body := `{"assigned_role":"HR Manager","assigned_company_id":"` + uuid.New().String() + `"}`
	c, w := newTestContext(http.MethodPost, "/api/v1/access-requests/some-id/approve", body)
	c.Params = gin.Params{{Key: "id", Value: "some-id"}}
	c.Set("user_id", "user-1")
	c.Set("idempotency_lock_key", lockKey)

	h.Approve(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet(), "a failed decision must still release the lock so retries reach the service")
}

func TestHandler_Reject_PassesReviewerCompanyAndCompletesProtocol(t *testing.T) {
	requestID := uuid.New().String()
	resp := accessrequest.AccessRequestResponse{
		ID:     requestID,
		Email:  "jane.doe@example.com",
		Status: accessrequest.StatusRejected,
	}

	var gotCompanyID string
	svc := &fakeService{}
	svc.rejectFn = func(ctx context.Context, id, reviewerID, reviewerCompanyID string) (accessrequest.AccessRequestResponse, error) {
		gotCompanyID = reviewerCompanyID
		return resp, nil
	}

	rdb, mock := redismock.NewClientMock()
	h := approval.NewHandlerWithRedis(svc, rdb)

	cacheKey := "idemp:/api/v1/access-requests/:id/reject:user-1:key-3"
	lockKey := cacheKey + ":lock"
	payload, _ := json.Marshal(resp)
	mock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(lockKey).SetVal(1)

	c, w := newTestContext(http.MethodPost, "/api/v1/access-requests/"+requestID+"/reject", "")
	c.Params = gin.Params{{Key: "id", Value: requestID}}
	c.Set("user_id", "user-1")
	c.Set("company_id", "company-1")
	c.Set("idempotency_cache_key", cacheKey)
	c.Set("idempotency_lock_key", lockKey)

	h.Reject(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "company-1", gotCompanyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
