// Package calcapi talks to the remote calculation service over HTTP.
package calcapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/csheth/calcscout/internal/calc"
)

const (
	defaultEndpoint = "http://localhost:8000"
	defaultTimeout  = 15 * time.Second
	maxErrorBody    = 512

	calculatePath = "/api/calculate"
	graphPath     = "/api/graph"
	healthPath    = "/api/health"
)

// Config describes how to reach the service.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
	SessionID  string
	Logger     *slog.Logger
}

// TransportError reports that a request did not produce a usable response:
// the service was unreachable, answered with a non-success status, or sent
// a body that is not the expected JSON.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client implements calc.Service.
type Client struct {
	endpoint  string
	client    *http.Client
	sessionID string
	logger    *slog.Logger
	sequence  atomic.Int64
}

var _ calc.Service = (*Client)(nil)

// New builds a client, filling unset fields with defaults.
func New(cfg Config) *Client {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:  endpoint,
		client:    pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
		sessionID: sessionID,
		logger:    logger,
	}
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Endpoint returns the service base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Calculate posts a request to the calculate endpoint.
func (c *Client) Calculate(ctx context.Context, req calc.CalculationRequest) (calc.Reply, error) {
	var reply calc.Reply
	if err := c.post(ctx, calculatePath, req, &reply); err != nil {
		return calc.Reply{}, err
	}
	return reply, nil
}

// graphBody accepts both the single-series response and the dataset list
// shape, where only the first dataset is used.
type graphBody struct {
	X        []float64  `json:"x"`
	Y        []*float64 `json:"y"`
	Error    string     `json:"error"`
	Datasets []struct {
		Expression string     `json:"expression"`
		X          []float64  `json:"x"`
		Y          []*float64 `json:"y"`
	} `json:"datasets"`
}

// Graph posts a request to the graph endpoint.
func (c *Client) Graph(ctx context.Context, req calc.GraphRequest) (calc.GraphReply, error) {
	var body graphBody
	if err := c.post(ctx, graphPath, req, &body); err != nil {
		return calc.GraphReply{}, err
	}
	if body.Error != "" {
		return calc.GraphReply{Error: body.Error}, nil
	}
	if body.X == nil && len(body.Datasets) > 0 {
		first := body.Datasets[0]
		return calc.GraphReply{X: first.X, Y: first.Y}, nil
	}
	return calc.GraphReply{X: body.X, Y: body.Y}, nil
}

// Health checks the service liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+healthPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Request-ID", c.nextRequestID())
	var body struct {
		OK bool `json:"ok"`
	}
	if err := c.do(req, "health", &body); err != nil {
		return err
	}
	if !body.OK {
		return &TransportError{Op: "health", Err: errors.New("service reported not ok")}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	op := strings.TrimPrefix(path, "/api/")
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", c.nextRequestID())
	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("service call",
		"op", op,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-ID"),
		"duration", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s (%s)", resp.Status, strings.TrimSpace(string(body))),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) nextRequestID() string {
	return fmt.Sprintf("%s-%d", c.sessionID, c.sequence.Add(1))
}
