package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/erp/addrconfirm/internal/domain/shared"
	"github.com/erp/addrconfirm/internal/infrastructure/config"
	"github.com/erp/addrconfirm/internal/infrastructure/security"
	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the ERP (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client talks to the S/4HANA OData v2 APIs. It authenticates every
// call with the service credential token source and performs the
// CSRF handshake OData requires for modifying requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     security.TokenSource
	log        *zap.Logger

	mu   sync.Mutex
	csrf string
}

// NewClient creates a new ERP client from the erp config section.
func NewClient(cfg config.ERPConfig, tokens security.TokenSource, log *zap.Logger) *Client {
	// The CSRF handshake needs the session cookies that come with the
	// token response, so the client carries a jar.
	jar, _ := cookiejar.New(nil)

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		tokens: tokens,
		log:    log,
	}
}

// get performs an authenticated GET and decodes the JSON response into out.
// A true return with nil error means the resource was not found.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (notFound bool, err error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, shared.NewRepositoryError(fmt.Sprintf("calling ERP %s", path), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return false, shared.NewRepositoryError(fmt.Sprintf("reading ERP response from %s", path), err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return true, nil
	case resp.StatusCode != http.StatusOK:
		return false, shared.NewRepositoryError(
			fmt.Sprintf("ERP returned status %d for %s", resp.StatusCode, path), nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return false, shared.NewRepositoryError(fmt.Sprintf("decoding ERP response from %s", path), err)
	}
	return false, nil
}

// patch performs an authenticated OData PATCH with the CSRF token,
// refetching the token once when the ERP rejects a stale one.
func (c *Client) patch(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return shared.NewRepositoryError(fmt.Sprintf("serializing ERP request for %s", path), err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		csrf, err := c.csrfToken(ctx, attempt > 0)
		if err != nil {
			return err
		}

		req, err := c.newRequest(ctx, http.MethodPatch, path, nil, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-CSRF-Token", csrf)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return shared.NewRepositoryError(fmt.Sprintf("calling ERP %s", path), err)
		}
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		resp.Body.Close()

		if resp.StatusCode == http.StatusForbidden && attempt == 0 {
			continue
		}
		if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
			return shared.NewRepositoryError(
				fmt.Sprintf("ERP returned status %d for %s", resp.StatusCode, path), nil)
		}
		return nil
	}
	return shared.NewRepositoryError(fmt.Sprintf("ERP kept rejecting the CSRF token for %s", path), nil)
}

// csrfToken returns the cached CSRF token, fetching a fresh one from
// the service root when the cache is empty or a refresh is forced.
func (c *Client) csrfToken(ctx context.Context, force bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.csrf != "" && !force {
		return c.csrf, nil
	}

	req, err := c.newRequest(ctx, http.MethodGet, businessPartnerService+"/", nil, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-CSRF-Token", "Fetch")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", shared.NewRepositoryError("fetching CSRF token", err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
	resp.Body.Close()

	token := resp.Header.Get("X-CSRF-Token")
	if token == "" {
		return "", shared.NewRepositoryError("ERP returned no CSRF token", nil)
	}
	c.csrf = token
	return token, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, shared.NewRepositoryError(fmt.Sprintf("building ERP request for %s", path), err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
