// Package tracker is a minimal client for the issue tracker's REST API.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Repo identifies the repository issues are filed against.
type Repo struct {
	Owner string
	Name  string
}

// ParseRepo parses an "owner/name" identifier.
func ParseRepo(s string) (Repo, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repo{}, fmt.Errorf("invalid repository %q (want owner/name)", s)
	}
	return Repo{Owner: owner, Name: name}, nil
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// Client files issues against a single repository.
type Client struct {
	baseURL    string
	token      string
	repo       Repo
	httpClient *http.Client
}

func NewClient(baseURL, token string, repo Repo, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		repo:    repo,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type issueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

type issueResponse struct {
	Number int `json:"number"`
}

// SubmissionError describes one failed create-issue call. Transport
// failures carry a zero StatusCode.
type SubmissionError struct {
	Title      string
	StatusCode int
	Message    string
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// CreateIssue files one issue and returns the tracker-assigned number.
// Every failure mode comes back as a *SubmissionError; the call is made
// once, with no retry.
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (int, error) {
	reqBody, err := json.Marshal(issueRequest{Title: title, Body: body, Labels: labels})
	if err != nil {
		return 0, &SubmissionError{Title: title, Message: "marshal request: " + err.Error()}
	}

	url := fmt.Sprintf("%s/repos/%s/%s/issues", c.baseURL, c.repo.Owner, c.repo.Name)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return 0, &SubmissionError{Title: title, Message: "create request: " + err.Error()}
	}
	httpReq.Header.Set("Authorization", "token "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, &SubmissionError{Title: title, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, &SubmissionError{Title: title, StatusCode: resp.StatusCode, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return 0, &SubmissionError{
			Title:      title,
			StatusCode: resp.StatusCode,
			Message:    truncate(strings.TrimSpace(string(respBody)), 200),
		}
	}

	var created issueResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return 0, &SubmissionError{Title: title, StatusCode: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	if created.Number == 0 {
		return 0, &SubmissionError{Title: title, StatusCode: resp.StatusCode, Message: "response missing issue number"}
	}
	return created.Number, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
