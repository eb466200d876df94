package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/dmitrijs2005/passgate/internal/logging"
)

const (
	authPath      = "/authenticate/auth"
	autoLoginPath = "/authenticate/autoLogin"
	createPath    = "/companyRecords/create"
	searchPath    = "/companyRecords/search"
	fetchPath     = "/companyRecords/fetch"
	updatePath    = "/companyRecords/update"
)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	jar     http.CookieJar
	logger  logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, l logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse server url: unsupported scheme %q", u.Scheme)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout, Jar: jar},
		jar:     jar,
		logger:  l.With("module", "http_client"),
	}, nil
}

func (c *HTTPClient) Authenticate(ctx context.Context, passcode string) (string, error) {
	var resp struct {
		Name string `json:"name"`
	}
	if err := c.do(ctx, http.MethodPost, authPath, map[string]string{"key": passcode}, false, &resp); err != nil {
		return "", err
	}
	return resp.Name, nil
}

func (c *HTTPClient) Verify(ctx context.Context) error {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, autoLoginPath, nil, true, &resp); err != nil {
		return err
	}
	if resp.Message != "Token is valid" {
		return fmt.Errorf("%w: unexpected verification response", ErrUnauthorized)
	}
	return nil
}

// Logout expires the session cookie in the jar. The server keeps no session
// state, so there is nothing to call.
func (c *HTTPClient) Logout(context.Context) error {
	c.jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:   common.SessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}})
	return nil
}

func (c *HTTPClient) FetchRecords(ctx context.Context) ([]Record, error) {
	var out []Record
	if err := c.do(ctx, http.MethodGet, fetchPath, nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SearchRecords(ctx context.Context, query string) ([]Record, error) {
	var out []Record
	if err := c.do(ctx, http.MethodPost, searchPath, map[string]string{"query": query}, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateRecord(ctx context.Context, rec Record) error {
	return c.do(ctx, http.MethodPost, createPath, rec, true, nil)
}

func (c *HTTPClient) UpdateRecord(ctx context.Context, rec Record) (*Record, error) {
	var out Record
	if err := c.do(ctx, http.MethodPost, updatePath, rec, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// sessionToken returns the token stored in the jar, if any.
func (c *HTTPClient) sessionToken() string {
	for _, ck := range c.jar.Cookies(c.baseURL) {
		if ck.Name == common.SessionCookieName {
			return ck.Value
		}
	}
	return ""
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, withSession bool, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withSession {
		if token := c.sessionToken(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&body)

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusBadRequest:
		sentinel = ErrBadFormat
	case resp.StatusCode == http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		sentinel = ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		sentinel = ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		sentinel = ErrConflict
	case resp.StatusCode >= 500:
		sentinel = ErrServer
	default:
		sentinel = errors.New(resp.Status)
	}

	if body.Error == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, body.Error)
}
