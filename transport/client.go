package transport

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/credentials"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "marquee"
)

// Auth endpoint paths. Requests to these never carry a bearer credential and
// are never renewed.
const (
	TokenPath    = "/token/"
	RefreshPath  = "/token/refresh/"
	RegisterPath = "/register/"
)

// Handler sends a request and returns its response.
type Handler func(ctx context.Context, req *Request) (*Response, error)

// Interceptor wraps the handler that sends requests over the wire.
type Interceptor func(next Handler) Handler

// Request describes a single API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// Anonymous requests carry no bearer credential and are not renewed on 401.
	Anonymous bool

	retried   bool
	sentToken string
}

// Retried reports whether the request has already been replayed after a renewal.
func (r *Request) Retried() bool {
	return r.retried
}

// Response is a successful (2xx) API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Client represents a movie API client
type Client struct {
	baseURL    string
	store      credentials.Store
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger

	interceptor       Interceptor
	customInterceptor bool
	refresher         *Refresher
}

// NewClient creates a new API client. Unless WithInterceptor is given, a
// Refresher backed by store is installed as the interceptor.
func NewClient(baseURL string, store credentials.Store, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("API URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	if store == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	c := &Client{
		baseURL: baseURL,
		store:   store,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	if !c.customInterceptor {
		c.refresher = NewRefresher(c.send, store, logger)
		c.interceptor = c.refresher.Intercept
	}

	return c, nil
}

// BaseURL returns the API root every request path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Store returns the credential store the client reads from.
func (c *Client) Store() credentials.Store {
	return c.store
}

// Do sends req through the installed interceptor.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	if c.interceptor == nil {
		return c.send(ctx, req)
	}
	return c.interceptor(c.send)(ctx, req)
}

// send performs one HTTP round trip with the current access credential
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	reqURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		reqURL += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	req.sentToken = ""
	if !req.Anonymous {
		if token, ok := c.store.Access(); ok {
			httpReq.Header.Set("Authorization", "Bearer "+token)
			req.sentToken = token
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", req.Method, reqURL, ctxErr)
		}
		return nil, &TransportError{Method: req.Method, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", req.Method, reqURL, ctxErr)
		}
		return nil, &TransportError{Method: req.Method, URL: reqURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Bool("retried", req.retried).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newResponseError(resp.StatusCode, data)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// newResponseError classifies a non-2xx response body
func newResponseError(status int, body []byte) error {
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(body, &fields)

	if status == http.StatusBadRequest {
		if ve := validationFields(fields); ve != nil {
			return &ValidationError{StatusCode: status, Fields: ve}
		}
	}

	msg := http.StatusText(status)
	for _, key := range []string{"detail", "error"} {
		if raw, ok := fields[key]; ok {
			var s string
			if json.Unmarshal(raw, &s) == nil && s != "" {
				msg = s
				break
			}
		}
	}

	return &APIError{StatusCode: status, Message: msg, Body: string(body)}
}

// validationFields extracts per-field messages, ignoring the generic
// detail/error keys. Returns nil when the body is not a field mapping.
func validationFields(raw map[string]json.RawMessage) map[string][]string {
	fields := make(map[string][]string)
	for name, value := range raw {
		if name == "detail" || name == "error" {
			continue
		}
		var msgs []string
		if err := json.Unmarshal(value, &msgs); err == nil {
			fields[name] = msgs
			continue
		}
		var msg string
		if err := json.Unmarshal(value, &msg); err == nil {
			fields[name] = []string{msg}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// isUnauthorized reports whether err is a 401 response
func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsUnauthorized()
}
