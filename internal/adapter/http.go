package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/scorebook-app/scorebook/internal/config"
	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/internal/utils"
	"github.com/scorebook-app/scorebook/models"
)

type httpRemoteTransport struct {
	client *utils.HTTPClient

	// mu guards token: the session gate rotates it from its own goroutine
	// while engine workers build requests concurrently.
	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteTransport constructs an HTTP/REST implementation of
// [RemoteTransport] against the scorebook API. It normalises and validates
// the base URL from adapterCfg.HTTPAddress and configures the underlying
// HTTP client with the resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPRemoteTransport(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteTransport, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpRemoteTransport{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteTransport]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpRemoteTransport) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteTransport]. It returns the bearer token currently
// held by the transport, or an empty string if none has been set.
func (h *httpRemoteTransport) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Push implements [RemoteTransport]. It POSTs the optimistic-concurrency
// write to POST /api/sync/push. An HTTP 409 response is mapped to
// [ErrConflict]; transient failure classes map to [ErrUnavailable]. On
// success the decoded [models.PushResponse] carries the version the remote
// assigned.
func (h *httpRemoteTransport) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	var result models.PushResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/sync/push")
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: push request: %v", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResponse{}, err
	}

	return result, nil
}

// Pull implements [RemoteTransport]. It GETs the record's current remote
// state from GET /api/sync/records/{kind}/{id}. Returns [ErrNotFound]
// (wrapped) when the remote has no such record.
func (h *httpRemoteTransport) Pull(ctx context.Context, ownerID int64, ref models.EntityRef) (models.PullResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{
			"kind": string(ref.Kind),
			"id":   ref.ID,
		}).
		SetQueryParam("owner_id", fmt.Sprintf("%d", ownerID)).
		Get("/api/sync/records/{kind}/{id}")
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: pull request: %v", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PullResponse{}, err
	}

	var record models.PullResponse
	if err = json.Unmarshal(resp.Body(), &record); err != nil {
		return models.PullResponse{}, fmt.Errorf("decode pull response: %w", err)
	}

	return record, nil
}

// PullAll implements [RemoteTransport]. It GETs the owner's full remote set
// from GET /api/sync/records, soft-deleted records included, so that a full
// resync can propagate deletions.
func (h *httpRemoteTransport) PullAll(ctx context.Context, ownerID int64) ([]models.PullResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("owner_id", fmt.Sprintf("%d", ownerID)).
		Get("/api/sync/records")
	if err != nil {
		return nil, fmt.Errorf("%w: pull-all request: %v", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var result models.PullAllResponse
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode pull-all response: %w", err)
	}
	if result.Length != len(result.Records) {
		h.logger.Warn().
			Int("declared", result.Length).
			Int("actual", len(result.Records)).
			Msg("pull-all length mismatch")
	}

	return result.Records, nil
}

func (h *httpRemoteTransport) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
