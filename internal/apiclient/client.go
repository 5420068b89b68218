package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Client talks JSON to the library API rooted at BaseURL.
type Client struct {
	baseURL string
	rest    *resty.Client
	log     zerolog.Logger
}

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	log        zerolog.Logger
}

// Option customises a Client.
type Option func(*options)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTimeout bounds every request. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger attaches a logger used for request diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// New creates a client for the API at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	rest := resty.New()
	if o.httpClient != nil {
		rest = resty.NewWithClient(o.httpClient)
	}
	baseURL = strings.TrimRight(baseURL, "/")
	rest.SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{o.log})
	if o.timeout > 0 {
		rest.SetTimeout(o.timeout)
	}

	return &Client{
		baseURL: baseURL,
		rest:    rest,
		log:     o.log,
	}
}

// BaseURL returns the API origin the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request. A non-nil body is encoded as JSON; a non-nil out
// receives the decoded response. An empty 2xx body leaves out untouched.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	url := c.baseURL + path
	fail := func(status int, err error) error {
		return &TransportError{Op: op, Method: method, URL: url, Status: status, Err: err}
	}

	req := c.rest.R().SetContext(ctx)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(0, fmt.Errorf("encoding request: %w", err))
		}
		req.SetHeader("Content-Type", "application/json").SetBody(data)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("url", url).Msg("api request failed")
		return fail(0, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode()).
		Dur("took", resp.Time()).
		Msg("api request")

	data := resp.Body()
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fail(resp.StatusCode(), statusError(resp.Status(), data))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(resp.StatusCode(), fmt.Errorf("%w: %v", ErrMalformedBody, err))
	}
	return nil
}

const maxErrorExcerpt = 200

func statusError(status string, body []byte) error {
	excerpt := strings.TrimSpace(string(body))
	if len(excerpt) > maxErrorExcerpt {
		excerpt = excerpt[:maxErrorExcerpt] + "..."
	}
	if excerpt == "" {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, status)
	}
	return fmt.Errorf("%w: %s: %s", ErrUnexpectedStatus, status, excerpt)
}

// IsTransport reports whether err came from the network layer.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// restyLogger routes resty's own messages into zerolog.
type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), v...)
}
