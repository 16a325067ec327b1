package security

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/erp/addrconfirm/internal/domain/shared"
	"github.com/golang-jwt/jwt/v5"
)

// refreshSkew is how long before expiry a cached token is considered
// stale, so a request never goes out with a token about to lapse.
const refreshSkew = 30 * time.Second

// TokenSource yields a bearer token for outbound ERP calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// ClientCredentialsTokenSource fetches OAuth2 tokens via the
// client-credentials grant and caches them until shortly before
// expiry. Safe for concurrent use.
type ClientCredentialsTokenSource struct {
	tokenURL     string
	clientID     string
	clientSecret string
	client       *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewClientCredentialsTokenSource builds a token source against the
// given OAuth2 token endpoint.
func NewClientCredentialsTokenSource(tokenURL, clientID, clientSecret string, client *http.Client) *ClientCredentialsTokenSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ClientCredentialsTokenSource{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       client,
	}
}

// Token returns the cached access token, fetching a fresh one when the
// cache is empty or about to expire. Failures are SecurityErrors.
func (s *ClientCredentialsTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.expires.Add(-refreshSkew)) {
		return s.token, nil
	}

	token, expires, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	s.token = token
	s.expires = expires
	return s.token, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *ClientCredentialsTokenSource) fetch(ctx context.Context) (string, time.Time, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, shared.NewSecurityError("building token request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.clientID, s.clientSecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", time.Time{}, shared.NewSecurityError("requesting service token", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", time.Time{}, shared.NewSecurityError("reading token response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, shared.NewSecurityError(
			fmt.Sprintf("token endpoint returned status %d", resp.StatusCode), nil)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", time.Time{}, shared.NewSecurityError("decoding token response", err)
	}
	if tr.AccessToken == "" {
		return "", time.Time{}, shared.NewSecurityError("token response carries no access_token", nil)
	}

	return tr.AccessToken, tokenExpiry(tr), nil
}

// tokenExpiry reads the expiry from the token's exp claim when the
// access token is a JWT, falling back to expires_in. The signature is
// not verified; the token came over the authenticated channel and the
// claim is only used for cache lifetime.
func tokenExpiry(tr tokenResponse) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tr.AccessToken, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	if tr.ExpiresIn > 0 {
		return time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return time.Now().Add(refreshSkew)
}
