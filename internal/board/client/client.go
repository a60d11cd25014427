package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	api "github.com/shopfloor/schedboard/api/v1"
)

// Gateway is the record store consulted by the job repository. The HTTP
// implementation below talks to the schedboard API; tests substitute fakes.
type Gateway interface {
	ListJobs(ctx context.Context) ([]api.Job, error)
	GetJob(ctx context.Context, id string) (*api.Job, error)
	CreateJob(ctx context.Context, job api.Job) (*api.Job, error)
	UpdateJob(ctx context.Context, id string, patch api.JobPatch) (*api.Job, error)
	ArchiveJob(ctx context.Context, id string, completeDate string) (*api.Job, error)
	DeleteJob(ctx context.Context, id string) error
	ListPriorities(ctx context.Context) (map[string]api.Priority, error)
	SetPriority(ctx context.Context, machine string, priority api.Priority) error
}

const (
	defaultTimeout = 10 * time.Second
	readAttempts   = 3
)

type Client struct {
	baseURL string
	http    *http.Client
}

// Make sure we conform to Gateway interface
var _ Gateway = (*Client)(nil)

type Option func(*Client)

// WithTimeout caps every gateway request. The upstream's latency is outside
// our control, so requests never hang indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a gateway client for the API rooted at baseURL, e.g.
// "http://localhost:3001/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListJobs fetches the full job collection. Reads are retried with backoff,
// they are safe to repeat.
func (c *Client) ListJobs(ctx context.Context) ([]api.Job, error) {
	var reply api.JobListReply
	if err := c.getWithRetry(ctx, "/jobs", &reply); err != nil {
		return nil, err
	}
	return reply.Jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*api.Job, error) {
	var reply api.JobReply
	if err := c.getWithRetry(ctx, "/jobs/"+id, &reply); err != nil {
		return nil, err
	}
	return &reply.Job, nil
}

// CreateJob is never retried: create is not idempotent and a repeated request
// could insert the job twice.
func (c *Client) CreateJob(ctx context.Context, job api.Job) (*api.Job, error) {
	var reply api.JobCreatedReply
	if err := c.do(ctx, http.MethodPost, "/jobs", job, &reply); err != nil {
		return nil, err
	}
	return &reply.Job, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, patch api.JobPatch) (*api.Job, error) {
	var reply api.JobUpdatedReply
	if err := c.do(ctx, http.MethodPatch, "/jobs/"+id, patch, &reply); err != nil {
		return nil, err
	}
	return &reply.Job, nil
}

func (c *Client) ArchiveJob(ctx context.Context, id string, completeDate string) (*api.Job, error) {
	var reply api.JobUpdatedReply
	if err := c.do(ctx, http.MethodPut, "/jobs/"+id+"/archive", api.ArchiveRequest{CompleteDate: completeDate}, &reply); err != nil {
		return nil, err
	}
	return &reply.Job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	var reply api.JobDeletedReply
	return c.do(ctx, http.MethodDelete, "/jobs/"+id, nil, &reply)
}

func (c *Client) ListPriorities(ctx context.Context) (map[string]api.Priority, error) {
	var reply api.PriorityListReply
	if err := c.getWithRetry(ctx, "/priorities", &reply); err != nil {
		return nil, err
	}
	return reply.Priorities, nil
}

func (c *Client) SetPriority(ctx context.Context, machine string, priority api.Priority) error {
	var reply api.PriorityReply
	return c.do(ctx, http.MethodPut, "/priorities/"+machine, api.PriorityUpdateRequest{Priority: priority}, &reply)
}

func (c *Client) getWithRetry(ctx context.Context, path string, out any) error {
	return retry.Do(
		func() error {
			return c.do(ctx, http.MethodGet, path, nil, out)
		},
		retry.Attempts(readAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// A 404 is an answer, not an outage.
			return !IsNotFound(err)
		}),
	)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &GatewayError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Op: method + " " + path}
	}
	if resp.StatusCode >= 400 {
		var apiErr api.ErrorReply
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &GatewayError{
			Op:         method + " " + path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", apiErr.Error),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &GatewayError{Op: method + " " + path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
		}
	}
	return nil
}
