// Package httpapi is the REST client for the storefront backend. It
// implements the collaborator surface the session manager drives and
// resolves transport failures into the tagged error shapes the rest of the
// client works with.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nepdora/go-storefront-auth/apierror"
	"github.com/nepdora/go-storefront-auth/session"
	"github.com/nepdora/go-storefront-auth/token"
)

const defaultTimeout = 30 * time.Second

// Client calls the storefront backend. It implements session.AuthAPI.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

var _ session.AuthAPI = (*Client)(nil)

// Option modifies a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.http = httpClient }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// New creates a Client for the given API base URL.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// loginResponse is the wire shape of a successful login.
type loginResponse struct {
	Tokens token.Pair `json:"tokens"`
}

// Login exchanges credentials for a token pair. Failures come back as a
// *apierror.RequestError tagged with the failure origin so the login
// message derivation can tell a backend rejection from a network problem.
func (c *Client) Login(ctx context.Context, credentials session.Credentials) (token.Pair, error) {
	resp, err := c.postJSON(ctx, "/api/auth/login/", credentials)
	if err != nil {
		return token.Pair{}, err
	}

	var decoded loginResponse
	if err := json.Unmarshal(resp, &decoded); err != nil {
		return token.Pair{}, &apierror.RequestError{
			Origin: apierror.OriginSendFailure,
			Err:    fmt.Errorf("failed to decode login response: %w", err),
		}
	}
	return decoded.Tokens, nil
}

// Signup registers a new account. The confirmation-only field is excluded
// from the payload by its JSON tag.
func (c *Client) Signup(ctx context.Context, data session.SignupData) error {
	_, err := c.postJSON(ctx, "/api/auth/signup/", data)
	return err
}

// pageExistsResponse is the wire shape of the page-existence probe.
type pageExistsResponse struct {
	Exists bool `json:"exists"`
}

// PageExists probes whether a published page exists for a site. A 404 means
// the page does not exist; other failures are returned to the caller, who
// treats the probe as soft-fail.
func (c *Client) PageExists(ctx context.Context, site, page string) (bool, error) {
	path := fmt.Sprintf("/api/publish/%s/pages/%s/exists/", url.PathEscape(site), url.PathEscape(page))

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if err := apierror.FromResponse(resp); err != nil {
		return false, err
	}

	var decoded pageExistsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return false, fmt.Errorf("failed to decode page probe response: %w", err)
	}
	return decoded.Exists, nil
}

// postJSON posts a JSON payload and returns the raw success body. Non-2xx
// responses and transport failures become *apierror.RequestError values.
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &apierror.RequestError{
			Origin: apierror.OriginSendFailure,
			Err:    fmt.Errorf("failed to encode request: %w", err),
		}
	}

	resp, err := c.do(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apierror.RequestError{Origin: apierror.OriginNoResponse, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var decoded map[string]any
		_ = json.Unmarshal(raw, &decoded)
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("Request rejected")
		return nil, &apierror.RequestError{
			Origin: apierror.OriginResponse,
			Status: resp.StatusCode,
			Body:   decoded,
		}
	}
	return raw, nil
}

// jsonBody encodes a payload for requests whose shape cannot fail to
// marshal.
func jsonBody(payload any) io.Reader {
	raw, _ := json.Marshal(payload)
	return bytes.NewReader(raw)
}

// do sends one request. Failures before the request leaves the client are
// tagged OriginSendFailure; failures after it was sent, OriginNoResponse.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &apierror.RequestError{
			Origin: apierror.OriginSendFailure,
			Err:    fmt.Errorf("failed to build request: %w", err),
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &apierror.RequestError{Origin: apierror.OriginNoResponse, Err: err}
	}
	return resp, nil
}
