// Package client talks to the telemetry endpoint over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/metrics"
)

// Endpoint paths, relative to the base URL.
const (
	PathData   = "/api/data"
	PathStatus = "/api/status"
	PathReport = "/api/report"
	PathStart  = "/api/start"
	PathStop   = "/api/stop"
)

const (
	DefaultTimeout       = 10 * time.Second
	DefaultReportTimeout = 2 * time.Minute
	maxErrorBody         = 64 << 10
)

// DialFunc opens the connection for a request, e.g. through an SSH tunnel.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Options configures a Client. Zero values select defaults.
type Options struct {
	BaseURL string
	// Timeout bounds each data and status request.
	Timeout time.Duration
	// ReportTimeout bounds a report request, including the body download.
	ReportTimeout time.Duration
	Tokens        TokenSource
	Dial          DialFunc
	UserAgent     string
	Logger        logger.Logger
}

// Client fetches snapshots, session status and reports.
type Client struct {
	base          string
	http          *http.Client
	timeout       time.Duration
	reportTimeout time.Duration
	tokens        TokenSource
	userAgent     string
	log           logger.Logger
	now           func() time.Time
}

// New creates a client for the endpoint at opts.BaseURL.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Endpoint URL %q isn't usable", opts.BaseURL),
			"Use a full URL like http://localhost:5000")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.Dial != nil {
		transport.DialContext = opts.Dial
		transport.Proxy = nil
	}

	c := &Client{
		base:          base,
		http:          &http.Client{Transport: transport},
		timeout:       opts.Timeout,
		reportTimeout: opts.ReportTimeout,
		tokens:        opts.Tokens,
		userAgent:     opts.UserAgent,
		log:           opts.Logger,
		now:           time.Now,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.reportTimeout <= 0 {
		c.reportTimeout = DefaultReportTimeout
	}
	if c.userAgent == "" {
		c.userAgent = "sysdash"
	}
	if c.log == nil {
		c.log = logger.NewEnvLogger("[client]")
	}
	return c, nil
}

// BaseURL returns the endpoint base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base
}

// FetchSnapshot fetches GET /api/data. Required-field checks are left to the
// caller so a partial snapshot can be reported precisely.
func (c *Client) FetchSnapshot(ctx context.Context) (*metrics.Snapshot, error) {
	var snap metrics.Snapshot
	if err := c.getJSON(ctx, PathData, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// FetchStatus fetches GET /api/status.
func (c *Client) FetchStatus(ctx context.Context) (*metrics.SessionStatus, error) {
	var status metrics.SessionStatus
	if err := c.getJSON(ctx, PathStatus, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StartSession asks the endpoint to begin a monitoring session. The endpoint
// clears its previous session's samples when it starts a new one.
func (c *Client) StartSession(ctx context.Context) error {
	return c.control(ctx, PathStart, "started")
}

// StopSession ends the current monitoring session. Stopping an idle endpoint
// is not an error.
func (c *Client) StopSession(ctx context.Context) error {
	return c.control(ctx, PathStop, "stopped")
}

// control hits a session endpoint and checks it answered {"status": want}.
func (c *Client) control(ctx context.Context, path, want string) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, path, &body); err != nil {
		return err
	}
	if body.Status != want {
		return errors.Validation(
			fmt.Sprintf("Unexpected reply from %s: status %q, want %q", path, body.Status, want), nil)
	}
	return nil
}

// FetchReport requests GET /api/report. On success the caller owns the body.
// A failure response carrying {"error": "..."} becomes an ErrReport error with
// the server's message; anything else that isn't a success is ErrFetch.
func (c *Client) FetchReport(ctx context.Context) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, c.reportTimeout)

	resp, err := c.do(ctx, PathReport)
	if err != nil {
		cancel()
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer cancel()
		defer resp.Body.Close()
		var body struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &body) == nil && body.Error != "" {
			return nil, errors.Report(body.Error)
		}
		return nil, errors.Fetch(fmt.Errorf("HTTP %s", resp.Status), PathReport)
	}

	return &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.do(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return errors.Fetch(fmt.Errorf("HTTP %s", resp.Status), path)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if ctx.Err() != nil {
			return errors.Fetch(err, path)
		}
		return errors.Validation(fmt.Sprintf("Response from %s isn't valid JSON", path), err)
	}
	return nil
}

// do sends an authorized GET. Transport failures come back as ErrFetch.
func (c *Client) do(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, errors.Fetch(err, path)
	}
	req.Header.Set("User-Agent", c.userAgent)

	if c.tokens != nil {
		token, err := c.tokens.Token(c.now())
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("GET %s failed after %s: %v", path, time.Since(start).Round(time.Millisecond), err)
		return nil, errors.Fetch(err, path)
	}
	c.log.Debug("GET %s -> %d (%s)", path, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	return resp, nil
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// cancelOnClose releases the report deadline once the body is closed. Read
// failures are transport failures.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *cancelOnClose) Read(p []byte) (int, error) {
	n, err := r.ReadCloser.Read(p)
	if err != nil && err != io.EOF {
		err = errors.Fetch(err, PathReport)
	}
	return n, err
}

func (r *cancelOnClose) Close() error {
	err := r.ReadCloser.Close()
	r.cancel()
	return err
}
