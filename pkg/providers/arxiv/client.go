// Package arxiv implements the literature-search collaborator against the
// arXiv Atom API.
package arxiv

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kiranalabs/kirana/pkg/resilience"
	"github.com/kiranalabs/kirana/pkg/tools/search"
)

const defaultBaseURL = "http://export.arxiv.org/api/query"

type Client struct {
	BaseURL    string
	MaxResults int
	HTTPClient *http.Client
	Retry      resilience.RetryPolicy
}

func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		MaxResults: 3,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Retry:      transientRetry(resilience.NewRetryPolicy(2, 200*time.Millisecond)),
	}
}

// transientRetry limits a policy to transport failures and server errors;
// client errors (bad query syntax) fail immediately.
func transientRetry(policy resilience.RetryPolicy) resilience.RetryPolicy {
	policy.IsRetryable = func(err error) bool {
		var se *statusError
		if errors.As(err, &se) {
			return se.code >= http.StatusInternalServerError
		}
		return true
	}
	return policy
}

type statusError struct{ code int }

func (e *statusError) Error() string { return fmt.Sprintf("arxiv status %d", e.code) }

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID    string `xml:"id"`
	Title string `xml:"title"`
}

// Search queries arXiv for the top papers matching the query, sorted by
// relevance. Transient transport and server failures are retried per the
// client's policy; remaining failures come back as errors. An empty feed is
// a successful empty result.
func (c *Client) Search(ctx context.Context, query string) ([]search.Entry, error) {
	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", c.maxResults()))
	params.Set("sortBy", "relevance")
	params.Set("sortOrder", "descending")

	var out []search.Entry
	err := c.Retry.Do(ctx, func() error {
		var attemptErr error
		out, attemptErr = c.fetch(ctx, params)
		return attemptErr
	})
	return out, err
}

func (c *Client) fetch(ctx context.Context, params url.Values) ([]search.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv query: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}
	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("arxiv feed decode: %w", err)
	}
	out := make([]search.Entry, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		out = append(out, search.Entry{
			Title:      collapseWhitespace(entry.Title),
			Identifier: identifierFromID(entry.ID),
		})
	}
	return out, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) maxResults() int {
	if c.MaxResults > 0 {
		return c.MaxResults
	}
	return 3
}

func (c *Client) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// identifierFromID turns an Atom entry id URL like
// http://arxiv.org/abs/1706.03762v5 into arXiv:1706.03762v5.
func identifierFromID(id string) string {
	id = strings.TrimSpace(id)
	if idx := strings.LastIndex(id, "/abs/"); idx >= 0 {
		return "arXiv:" + id[idx+len("/abs/"):]
	}
	return id
}

// arXiv titles wrap across lines in the feed; fold runs of whitespace.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var _ search.Searcher = (*Client)(nil)
