package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/common"
	"github.com/dmitrijs2005/bizcards/internal/logging"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "bcard-cli"
	maxErrorBody     = 4 << 10
)

// Options tune an HTTPClient. The zero value is usable.
type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
	Transport         http.RoundTripper
	Logger            logging.Logger
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, tokens TokenSource, opts Options) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &transport{base: opts.Transport, limiter: limiter, userAgent: userAgent},
		},
		tokens: tokens,
		log:    log,
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Ping reports whether the API answers at all. Any HTTP status counts as
// reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/cards", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/users/login", false, creds)
	if err != nil {
		return "", err
	}
	return parseToken(body)
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (models.Identity, error) {
	var out models.Identity
	err := c.doJSON(ctx, http.MethodPost, "/users", false, reg, &out)
	return out, err
}

func (c *HTTPClient) Me(ctx context.Context) (models.Identity, error) {
	var out models.Identity
	err := c.doJSON(ctx, http.MethodGet, "/users/me", true, nil, &out)
	return out, err
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (models.Identity, error) {
	var out models.Identity
	err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(id), true, nil, &out)
	return out, err
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, upd models.ProfileUpdate) (models.Identity, error) {
	var out models.Identity
	err := c.doJSON(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), true, upd, &out)
	return out, err
}

func (c *HTTPClient) ListCards(ctx context.Context) ([]models.Card, error) {
	var out []models.Card
	err := c.doJSON(ctx, http.MethodGet, "/cards", false, nil, &out)
	return out, err
}

func (c *HTTPClient) GetCard(ctx context.Context, id string) (models.Card, error) {
	var out models.Card
	err := c.doJSON(ctx, http.MethodGet, "/cards/"+url.PathEscape(id), false, nil, &out)
	return out, err
}

func (c *HTTPClient) CreateCard(ctx context.Context, in models.CardInput) (models.Card, error) {
	var out models.Card
	err := c.doJSON(ctx, http.MethodPost, "/cards", true, in, &out)
	return out, err
}

func (c *HTTPClient) ToggleLike(ctx context.Context, id string) (*models.Card, error) {
	body, err := c.do(ctx, http.MethodPatch, "/cards/"+url.PathEscape(id), true, nil)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var card models.Card
	if err := json.Unmarshal(body, &card); err != nil || card.ID == "" {
		c.log.Debug(ctx, "like toggle answered without a card body", "card_id", id)
		return nil, nil
	}
	return &card, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, auth bool, in, out any) error {
	body, err := c.do(ctx, method, path, auth, in)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// do sends one request and returns the body of a 2xx response.
func (c *HTTPClient) do(ctx context.Context, method, path string, auth bool, in any) ([]byte, error) {
	if auth {
		token, ok := c.tokens.Token()
		if !ok {
			return nil, fmt.Errorf("%s %s: %w", method, path, ErrNoCredential)
		}
		ctx = withCredential(ctx, token)
	}

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, c.transportError(ctx, err))
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api call", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID(resp))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, c.transportError(ctx, err))
	}
	return body, nil
}

func requestID(resp *http.Response) string {
	if resp.Request == nil {
		return ""
	}
	return resp.Request.Header.Get(common.RequestIDHeaderName)
}

// transportError keeps cancellation distinguishable from an unreachable API.
func (c *HTTPClient) transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, ErrThrottled) {
		return ErrThrottled
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// parseToken accepts a bare token, a JSON string, or {"token": "..."}.
func parseToken(body []byte) (string, error) {
	raw := strings.TrimSpace(string(body))
	switch {
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return "", fmt.Errorf("decode token: %w", err)
		}
		raw = s
	case strings.HasPrefix(raw, "{"):
		var obj struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal([]byte(raw), &obj); err != nil {
			return "", fmt.Errorf("decode token: %w", err)
		}
		raw = obj.Token
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", common.ErrEmptyToken
	}
	return raw, nil
}
