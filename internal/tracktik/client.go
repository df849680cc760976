package tracktik

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	tracktikerrors "github.com/vjorihoxha/tiktak-vjori/internal/tracktik/errors"

	"github.com/vjorihoxha/tiktak-vjori/internal/shared/apperror"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const employeesEndpoint = "/rest/v1/employees"

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	AccessToken  string // optional initial token
	RefreshToken string
	Timeout      time.Duration
}

// Client talks to the TrackTik REST API. It owns the credential state:
// callers never see tokens, only authenticated operations.
type Client struct {
	http         *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	logger       *zap.Logger

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	tokenExpiry  time.Time // zero means unknown
	sf           singleflight.Group
}

func NewClient(cfg Config, logger ...*zap.Logger) *Client {
	l := zap.L().Named("tracktik.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tracktik.client")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		http:         &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		accessToken:  cfg.AccessToken,
		refreshToken: cfg.RefreshToken,
		logger:       l,
	}
}

// do issues an authenticated request. A 401 response triggers exactly one
// refresh-and-retry when a refresh token is available; a second 401, and any
// other failure, is surfaced to the caller unmodified.
func (c *Client) do(ctx context.Context, method, path string, body any) (map[string]any, error) {
	data, status, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized && c.hasRefreshToken() {
		c.logger.Warn("401 received, refreshing token and retrying",
			zap.String("method", method),
			zap.String("path", path),
		)
		if err := c.refreshAccessToken(ctx); err != nil {
			return nil, err
		}
		data, status, err = c.send(ctx, method, path, body)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case status == http.StatusUnauthorized:
		return nil, tracktikerrors.ErrUnauthorized
	case status >= 400:
		return nil, apperror.New(
			apperror.CodeTransport,
			fmt.Sprintf("TrackTik %s %s returned status %d", method, path, status),
			http.StatusBadGateway,
		)
	}

	return data, nil
}

// send performs a single authenticated round trip without retry policy.
func (c *Client) send(ctx context.Context, method, path string, body any) (map[string]any, int, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, 0, err
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, apperror.Wrap(err, apperror.CodeInternalError, "Failed to encode TrackTik payload", http.StatusInternalServerError)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, apperror.Wrap(err, apperror.CodeInternalError, "Failed to build TrackTik request", http.StatusInternalServerError)
	}

	req.Header.Set("Authorization", "Bearer "+c.AccessToken())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("TrackTik request transport failure",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, 0, apperror.Wrap(err, apperror.CodeTransport, "TrackTik request failed", http.StatusBadGateway)
	}
	defer resp.Body.Close()

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		// Some endpoints answer with an empty body; that is not an error.
		data = nil
	}

	return data, resp.StatusCode, nil
}

// ---- Public API wrappers ----

func (c *Client) CreateEmployee(ctx context.Context, employeeData map[string]any) (map[string]any, error) {
	return c.do(ctx, http.MethodPost, employeesEndpoint, employeeData)
}

func (c *Client) UpdateEmployee(ctx context.Context, trackTikID int64, employeeData map[string]any) (map[string]any, error) {
	return c.do(ctx, http.MethodPatch, employeesEndpoint+"/"+strconv.FormatInt(trackTikID, 10), employeeData)
}

func (c *Client) GetEmployee(ctx context.Context, trackTikID int64) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, employeesEndpoint+"/"+strconv.FormatInt(trackTikID, 10), nil)
}

func (c *Client) GetEmployeeSchema(ctx context.Context) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, employeesEndpoint+"/schema", nil)
}

func (c *Client) DeleteEmployee(ctx context.Context, trackTikID int64) error {
	_, err := c.do(ctx, http.MethodDelete, employeesEndpoint+"/"+strconv.FormatInt(trackTikID, 10), nil)
	return err
}

func (c *Client) SearchEmployees(ctx context.Context, filters map[string]string, limit, offset int) (map[string]any, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	for k, v := range filters {
		query.Set(k, v)
	}
	return c.do(ctx, http.MethodGet, employeesEndpoint+"?"+query.Encode(), nil)
}

// TestConnection verifies a usable credential can be produced. Used by the
// health endpoint; failures are reported, not fatal.
func (c *Client) TestConnection(ctx context.Context) bool {
	if err := c.ensureToken(ctx); err != nil {
		c.logger.Error("TrackTik API connection test failed", zap.Error(err))
		return false
	}
	return true
}
