// Package remoteok is a client for the RemoteOK API (https://remoteok.com/api).
// The endpoint returns a JSON array whose first element is a legal notice
// rather than a job; the client drops it.
package remoteok

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/scoutline/leadscout/internal/resilience"
)

const defaultBaseURL = "https://remoteok.com"

// Client fetches remote job postings from RemoteOK.
type Client interface {
	Jobs(ctx context.Context) ([]Job, error)
}

// Job is a single RemoteOK posting. The feed's numeric/string id field is
// not mapped; postings are identified by URL.
type Job struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	SalaryMin   int      `json:"salary_min"`
	SalaryMax   int      `json:"salary_max"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a RemoteOK API client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Jobs(ctx context.Context) ([]Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api", nil)
	if err != nil {
		return nil, eris.Wrap(err, "remoteok: create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "leadscout/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "remoteok: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "remoteok: read response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("remoteok: unexpected status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	// The payload is heterogeneous: element 0 is a {"legal": ...} notice.
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, eris.Wrap(err, "remoteok: unmarshal response")
	}

	jobs := make([]Job, 0, len(raw))
	for _, msg := range raw {
		var job Job
		if err := json.Unmarshal(msg, &job); err != nil {
			continue
		}
		if job.Position == "" || job.Company == "" {
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}
