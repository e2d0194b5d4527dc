package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// CreateIdentityRequest is the payload sent to the external identity
// provider when an approved requester is provisioned.
type CreateIdentityRequest struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
	CompanyID    string `json:"company_id"`
}

type CreateIdentityResponse struct {
	ExternalID string `json:"external_id"`
}

//go:generate mockgen -source=provider.go -destination=mock/provider_mock.go -package=mock
type Provider interface {
	CreateIdentity(ctx context.Context, req CreateIdentityRequest) (CreateIdentityResponse, error)
}

type httpProvider struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPProvider(baseURL string, logger ...*zap.Logger) Provider {
	l := zap.L().Named("identity.provider")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.provider")
	}
	return &httpProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  l,
	}
}

func (p *httpProvider) CreateIdentity(ctx context.Context, req CreateIdentityRequest) (CreateIdentityResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return CreateIdentityResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/v1/identities",
		bytes.NewReader(body),
	)
	if err != nil {
		return CreateIdentityResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.logger.Error("create identity request failed", zap.Error(err))
		return CreateIdentityResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		p.logger.Error("create identity rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("email", req.Email),
		)
		return CreateIdentityResponse{}, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var out CreateIdentityResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return CreateIdentityResponse{}, err
	}

	return out, nil
}
