package tracktik

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	tracktikerrors "github.com/vjorihoxha/tiktak-vjori/internal/tracktik/errors"

	"github.com/vjorihoxha/tiktak-vjori/internal/shared/apperror"
	"go.uber.org/zap"
)

// The TrackTik token endpoint expects an Idempotency-Key header. The upstream
// integration has always sent this fixed literal; kept until the tenant
// confirms what the key is supposed to scope.
const tokenIdempotencyKey = "asdasddsa"

const tokenEndpoint = "/rest/oauth2/access_token"

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// ensureToken guarantees an access token is set on return, refreshing it
// when needed. Decision order: an access token with unknown expiry is used
// optimistically; a token with a future expiry is used as-is; otherwise a
// refresh is attempted if a refresh token exists.
func (c *Client) ensureToken(ctx context.Context) error {
	c.mu.Lock()
	accessToken := c.accessToken
	expiry := c.tokenExpiry
	refreshToken := c.refreshToken
	c.mu.Unlock()

	if accessToken != "" && expiry.IsZero() {
		return nil
	}
	if accessToken != "" && time.Now().Before(expiry) {
		return nil
	}
	if refreshToken != "" {
		return c.refreshAccessToken(ctx)
	}

	return tracktikerrors.ErrNoCredential
}

// refreshAccessToken coalesces concurrent refresh attempts so that an
// expired-token stampede issues a single refresh call; every waiter gets
// that call's outcome.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	_, err, _ := c.sf.Do("refresh", func() (interface{}, error) {
		return nil, c.doRefresh(ctx)
	})
	return err
}

func (c *Client) doRefresh(ctx context.Context) error {
	c.mu.Lock()
	refreshToken := c.refreshToken
	c.mu.Unlock()

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"refresh_token": {refreshToken},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+tokenEndpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeTokenRefresh, "Failed to build token refresh request", http.StatusBadGateway)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", tokenIdempotencyKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("TrackTik token refresh failed", zap.Error(err))
		return apperror.Wrap(err, apperror.CodeTokenRefresh, "Failed to refresh token", http.StatusBadGateway)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeTokenRefresh, "Failed to read token response", http.StatusBadGateway)
	}

	if resp.StatusCode >= 400 {
		c.logger.Error("TrackTik token endpoint error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return tracktikerrors.ErrTokenRefresh
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return apperror.Wrap(err, apperror.CodeTokenRefresh, "Failed to decode token response", http.StatusBadGateway)
	}

	if token.AccessToken == "" {
		return apperror.New(apperror.CodeTokenRefresh, "Token refresh returned no access_token", http.StatusBadGateway)
	}

	// Apply the new state in one critical section so a concurrent reader can
	// never observe a new access token with a stale expiry.
	c.mu.Lock()
	c.accessToken = token.AccessToken

	if token.ExpiresIn > 0 {
		// Refresh a minute early
		seconds := token.ExpiresIn - 60
		if seconds < 1 {
			seconds = 1
		}
		c.tokenExpiry = time.Now().Add(time.Duration(seconds) * time.Second)
	} else {
		c.tokenExpiry = time.Time{}
	}

	// Some tenants rotate refresh tokens
	if token.RefreshToken != "" {
		c.refreshToken = token.RefreshToken
	}
	expiry := c.tokenExpiry
	c.mu.Unlock()

	if expiry.IsZero() {
		c.logger.Info("TrackTik: access token refreshed, expiry unknown")
	} else {
		c.logger.Info("TrackTik: access token refreshed",
			zap.Time("expires_at", expiry),
		)
	}

	return nil
}

func (c *Client) hasRefreshToken() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshToken != ""
}

// AccessToken returns the current access token, empty if none was obtained.
func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// IsTokenValid reports whether the current token would be accepted without a
// refresh: present and either not expiring or not yet expired.
func (c *Client) IsTokenValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != "" && (c.tokenExpiry.IsZero() || time.Now().Before(c.tokenExpiry))
}
