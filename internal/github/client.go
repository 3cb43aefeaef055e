package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.github.com"
	rawContentHost = "https://raw.githubusercontent.com"
	acceptHeader   = "application/vnd.github+json"
	apiVersion     = "2022-11-28"
)

// Gateway is the remote side of the catalog: listing product issues and,
// with a write-capable token, creating issues and uploading image blobs.
type Gateway interface {
	ListIssues(ctx context.Context, opts ListOptions) ([]Issue, error)
	CreateIssue(ctx context.Context, title, body string, labels []string) (Issue, error)
	UploadFile(ctx context.Context, path string, content []byte, message string) (string, error)
}

// Client implements Gateway against the GitHub REST API for a single
// owner/repo pair.
type Client struct {
	owner   string
	repo    string
	branch  string
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     logrus.FieldLogger
}

// NewClient builds a client for one repository. token may be empty for
// read-only use; writes then fail with ErrUnauthorized before any
// request is made. branch is where uploaded files land ("main" when
// empty).
func NewClient(owner, repo, branch, token string, logger logrus.FieldLogger) *Client {
	if branch == "" {
		branch = "main"
	}
	return &Client{
		owner:   owner,
		repo:    repo,
		branch:  branch,
		token:   token,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		// Unauthenticated clients get 60 requests/hour from GitHub;
		// one request per second with a small burst keeps rapid
		// refresh clicks from burning the budget.
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		log:     logger.WithField("component", "github"),
	}
}

// SetBaseURL overrides the API endpoint. Tests point this at httptest
// servers.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// SetToken swaps the credential used for subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// HasToken reports whether a write credential is configured.
func (c *Client) HasToken() bool { return c.token != "" }

// ListIssues fetches product issues, newest first.
func (c *Client) ListIssues(ctx context.Context, opts ListOptions) ([]Issue, error) {
	perPage := opts.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 100
	}
	state := opts.State
	if state == "" {
		state = "all"
	}

	q := url.Values{
		"state":     {state},
		"per_page":  {strconv.Itoa(perPage)},
		"sort":      {"created"},
		"direction": {"desc"},
	}
	if opts.Label != "" {
		q.Set("labels", opts.Label)
	}

	var issues []Issue
	path := fmt.Sprintf("/repos/%s/%s/issues?%s", c.owner, c.repo, q.Encode())
	if err := c.do(ctx, http.MethodGet, path, nil, &issues); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	c.log.WithField("count", len(issues)).Debug("Listed issues")
	return issues, nil
}

// CreateIssue opens a new issue. Requires a token with issue write
// scope.
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (Issue, error) {
	if c.token == "" {
		return Issue{}, fmt.Errorf("create issue: token required: %w", ErrUnauthorized)
	}
	payload := map[string]any{
		"title":  title,
		"body":   body,
		"labels": labels,
	}
	var created Issue
	path := fmt.Sprintf("/repos/%s/%s/issues", c.owner, c.repo)
	if err := c.do(ctx, http.MethodPost, path, payload, &created); err != nil {
		return Issue{}, fmt.Errorf("create issue: %w", err)
	}
	c.log.WithFields(logrus.Fields{"number": created.Number, "title": title}).Info("Issue created")
	return created, nil
}

// UploadFile commits a blob into the repository and returns the durable
// raw-content URL. Requires a token with contents write scope.
func (c *Client) UploadFile(ctx context.Context, path string, content []byte, message string) (string, error) {
	if c.token == "" {
		return "", fmt.Errorf("upload file: token required: %w", ErrUnauthorized)
	}
	payload := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	apiPath := fmt.Sprintf("/repos/%s/%s/contents/%s", c.owner, c.repo, path)
	if err := c.do(ctx, http.MethodPut, apiPath, payload, nil); err != nil {
		return "", fmt.Errorf("upload file %s: %w", path, err)
	}
	rawURL := fmt.Sprintf("%s/%s/%s/%s/%s", rawContentHost, c.owner, c.repo, c.branch, path)
	c.log.WithField("url", rawURL).Info("File uploaded")
	return rawURL, nil
}

// do runs one API request, decoding a JSON response into out when out is
// non-nil and translating non-2xx responses into typed failures.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	var ghMsg struct {
		Message string `json:"message"`
	}
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		if json.Unmarshal(raw, &ghMsg) == nil {
			apiErr.Message = ghMsg.Message
		}
	}
	c.log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"message": apiErr.Message,
	}).Warn("GitHub API error")
	return apiErr
}
