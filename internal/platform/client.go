package platform

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/log"
	"github.com/crossorg/hrconsole/internal/toast"
	"github.com/crossorg/hrconsole/internal/version"
)

// Defaults for NewClient.
const (
	DefaultBaseURL = "http://localhost:8123/api"
	DefaultTimeout = 10 * time.Second
)

// Messages shown for failures that carry no usable server message.
const (
	MsgSessionExpired = "登录已过期，请重新登录"
	MsgServerError    = "服务器错误，请稍后重试"
	MsgTimeout        = "请求超时，请检查网络连接"
	MsgNetworkFailure = "网络请求失败"
	MsgRequestFailed  = "请求失败"
)

// Envelope codes that mean the caller has to log in again.
var sessionExpiredCodes = map[int]bool{
	40100: true,
	401:   true,
	403:   true,
}

// IsSessionExpiredCode reports whether an envelope code means session expiry.
func IsSessionExpiredCode(code int) bool {
	return sessionExpiredCodes[code]
}

// Notifier surfaces error messages to the user.
type Notifier interface {
	Error(content string) *toast.Toast
}

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token() string
}

// SessionExpiryHandler runs when the backend reports an expired session.
type SessionExpiryHandler interface {
	HandleSessionExpired()
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// SilentErrors are substrings of business messages that are returned to
	// the caller without a toast.
	SilentErrors []string

	Notifier   Notifier
	Tokens     TokenSource
	OnExpired  SessionExpiryHandler
	Logger     *log.Logger
	HTTPClient *http.Client
}

// Client is the platform REST API client. Every call goes through the same
// request and response stages: bearer token injection, envelope decoding and
// failure handling.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	silent []string
	log    *log.Logger

	mu       sync.RWMutex
	notifier Notifier
	tokens   TokenSource
	expiry   SessionExpiryHandler
}

var userAgent = version.GetInfo().UserAgent()

// NewClient creates a new platform API client
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		httpClient = &http.Client{
			Timeout: opts.Timeout,
			Jar:     jar,
		}
	}

	return &Client{
		BaseURL:    strings.TrimRight(opts.BaseURL, "/"),
		HTTPClient: httpClient,
		silent:     append([]string(nil), opts.SilentErrors...),
		log:        opts.Logger.WithComponent("http"),
		notifier:   opts.Notifier,
		tokens:     opts.Tokens,
		expiry:     opts.OnExpired,
	}, nil
}

// SetNotifier replaces the notifier used for error toasts.
func (c *Client) SetNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier = n
}

// SetTokenSource replaces the bearer token source.
func (c *Client) SetTokenSource(t TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = t
}

// SetSessionExpiryHandler replaces the session expiry handler.
func (c *Client) SetSessionExpiryHandler(h SessionExpiryHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expiry = h
}

func (c *Client) hooks() (Notifier, TokenSource, SessionExpiryHandler) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notifier, c.tokens, c.expiry
}

// envelope is the uniform response body.
type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// request describes one outbound call.
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, query url.Values, body any) (request, error) {
	r := request{method: method, path: path, query: query, contentType: "application/json"}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return r, errors.Wrap(errors.ErrCodeAPIRequest, "failed to marshal request body", err)
		}
		r.body = bytes.NewReader(data)
	}
	return r, nil
}

// do runs r and decodes the envelope payload into out (when non-nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	notifier, tokens, _ := c.hooks()

	target := c.BaseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIRequest, "failed to create request", err)
	}
	req.Header.Set("Content-Type", r.contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if tokens != nil {
		if token := tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.DebugContext(ctx, "[Request]", "method", r.method, "path", r.path)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return c.transportFailure(ctx, notifier, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(ctx, notifier, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusFailure(notifier, resp.StatusCode, body)
	}

	var env envelope
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			c.notify(notifier, MsgNetworkFailure)
			return errors.Wrap(errors.ErrCodeAPIDecode, MsgNetworkFailure, err).
				WithEnvelope(0, resp.StatusCode)
		}
	}

	if env.Code != 0 {
		return c.businessFailure(notifier, env, resp.StatusCode)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrap(errors.ErrCodeAPIDecode, "failed to decode response data", err).
			WithEnvelope(0, resp.StatusCode)
	}
	return nil
}

// businessFailure handles a nonzero envelope code.
func (c *Client) businessFailure(notifier Notifier, env envelope, status int) error {
	msg := env.Message
	if msg == "" {
		msg = MsgRequestFailed
	}

	if IsSessionExpiredCode(env.Code) {
		c.log.Warn("session expired", "envelope_code", env.Code)
		c.expire()
		return errors.NewSessionExpiredError(msg, env.Code, status)
	}

	silent := c.isSilent(msg)
	if !silent {
		c.notify(notifier, msg)
	}
	c.log.Debug("business error", "envelope_code", env.Code, "message", msg, "silent", silent)
	return errors.NewBusinessError(msg, env.Code, silent)
}

// statusFailure handles a non-2xx transport status.
func (c *Client) statusFailure(notifier Notifier, status int, body []byte) error {
	var env envelope
	_ = json.Unmarshal(body, &env)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		msg := env.Message
		if msg == "" {
			msg = MsgSessionExpired
		}
		c.log.Warn("session expired", "http_status", status)
		c.expire()
		return errors.NewSessionExpiredError(msg, env.Code, status)
	case status == http.StatusInternalServerError:
		c.notify(notifier, MsgServerError)
		return errors.New(errors.ErrCodeNetServerError, MsgServerError).WithEnvelope(env.Code, status)
	default:
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("Request failed with status code %d", status)
		}
		c.notify(notifier, msg)
		return errors.New(errors.ErrCodeNetFailure, msg).WithEnvelope(env.Code, status)
	}
}

// transportFailure handles errors where no response was read.
func (c *Client) transportFailure(ctx context.Context, notifier Notifier, err error) error {
	if stderrors.Is(err, context.Canceled) || ctx.Err() == context.Canceled {
		return errors.Wrap(errors.ErrCodeNetFailure, "request cancelled", err)
	}
	if isTimeout(err) {
		c.notify(notifier, MsgTimeout)
		return errors.Wrap(errors.ErrCodeNetTimeout, MsgTimeout, err)
	}

	msg := err.Error()
	if msg == "" {
		msg = MsgNetworkFailure
	}
	c.notify(notifier, msg)
	return errors.Wrap(errors.ErrCodeNetFailure, MsgNetworkFailure, err)
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

func (c *Client) isSilent(msg string) bool {
	for _, keyword := range c.silent {
		if keyword != "" && strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}

func (c *Client) notify(n Notifier, msg string) {
	if n != nil {
		n.Error(msg)
	}
}

func (c *Client) expire() {
	_, _, h := c.hooks()
	if h != nil {
		h.HandleSessionExpired()
	}
}

func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var out T
	r, err := jsonRequest(method, path, query, body)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, r, &out)
	return out, err
}

func get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	return call[T](ctx, c, http.MethodGet, path, query, nil)
}

func post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return call[T](ctx, c, http.MethodPost, path, nil, body)
}

func put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return call[T](ctx, c, http.MethodPut, path, nil, body)
}

func del[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	return call[T](ctx, c, http.MethodDelete, path, query, nil)
}

// idQuery builds the ?id=N query used by the detail endpoints.
func idQuery(name string, id int64) url.Values {
	return url.Values{name: []string{fmt.Sprint(id)}}
}
