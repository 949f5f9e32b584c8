// Package github fetches repository activity metrics. It is a best-effort
// collaborator: any failure degrades to nil metrics, never an error, since
// absence of a public repo is valid for many assets.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"CoinPulse/internal/domain/models"
	xhttp "CoinPulse/pkg/http"
	xlogger "CoinPulse/pkg/logger"
)

// DefaultBaseURL is the GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

var lastPageRe = regexp.MustCompile(`page=(\d+)>; rel="last"`)

// Client talks to the GitHub REST API.
type Client struct {
	baseURL string
	token   string
	http    *xhttp.Client
	logger  *xlogger.Logger
}

// New creates a GitHub metrics client. The token is optional; without it the
// unauthenticated rate limit applies.
func New(baseURL, token string, timeout time.Duration, l *xlogger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:  l,
	}
}

type repoPayload struct {
	StargazersCount int        `json:"stargazers_count"`
	ForksCount      int        `json:"forks_count"`
	WatchersCount   int        `json:"watchers_count"`
	OpenIssuesCount int        `json:"open_issues_count"`
	CreatedAt       *time.Time `json:"created_at"`
	PushedAt        *time.Time `json:"pushed_at"`
	Fork            bool       `json:"fork"`
	License         *struct {
		Name string `json:"name"`
	} `json:"license"`
}

// GetMetrics fetches all activity metrics for an owner/repo pair. Returns
// nil when the repository does not exist or the API cannot be reached.
func (c *Client) GetMetrics(ctx context.Context, owner, repo string) *models.RepoMetrics {
	data := c.fetchRepo(ctx, owner, repo)
	if data == nil {
		return nil
	}

	m := &models.RepoMetrics{
		URL:        fmt.Sprintf("https://github.com/%s/%s", owner, repo),
		Stars:      data.StargazersCount,
		Forks:      data.ForksCount,
		Watchers:   data.WatchersCount,
		OpenIssues: data.OpenIssuesCount,
		CreatedAt:  data.CreatedAt,
		LastCommit: data.PushedAt,
		IsFork:     data.Fork,
	}
	if data.License != nil {
		m.License = &data.License.Name
	}

	m.CommitsYear = c.commitCountLastYear(ctx, owner, repo)
	m.Contributors = c.contributorCount(ctx, owner, repo)
	return m
}

func (c *Client) fetchRepo(ctx context.Context, owner, repo string) *repoPayload {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo),
		Headers: c.headers(),
	})
	if err != nil {
		c.logger.Warn("github repo fetch failed",
			xlogger.String("owner", owner), xlogger.String("repo", repo), xlogger.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode != http.StatusNotFound {
			c.logger.Warn("github repo fetch non-200",
				xlogger.String("repo", owner+"/"+repo), xlogger.Int("status", resp.StatusCode))
		}
		return nil
	}

	var data repoPayload
	if err := decodeJSON(resp, &data); err != nil {
		return nil
	}
	return &data
}

// commitCountLastYear counts commits pushed in the last year, capped at one
// page of 100.
func (c *Client) commitCountLastYear(ctx context.Context, owner, repo string) int {
	since := time.Now().AddDate(-1, 0, 0).UTC().Format(time.RFC3339)
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     fmt.Sprintf("%s/repos/%s/%s/commits", c.baseURL, owner, repo),
		Headers: c.headers(),
		QueryParams: map[string][]string{
			"per_page": {"100"},
			"since":    {since},
		},
	})
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0
	}

	var commits []struct {
		SHA string `json:"sha"`
	}
	if err := decodeJSON(resp, &commits); err != nil {
		return 0
	}
	return len(commits)
}

// contributorCount asks for one contributor per page and reads the total
// page count off the Link header's rel="last" entry.
func (c *Client) contributorCount(ctx context.Context, owner, repo string) int {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     fmt.Sprintf("%s/repos/%s/%s/contributors", c.baseURL, owner, repo),
		Headers: c.headers(),
		QueryParams: map[string][]string{
			"per_page": {"1"},
		},
	})
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0
	}

	if link := resp.Header.Get("Link"); link != "" {
		if match := lastPageRe.FindStringSubmatch(link); match != nil {
			if n, err := strconv.Atoi(match[1]); err == nil {
				return n
			}
		}
	}

	var contributors []struct {
		Login string `json:"login"`
	}
	if err := decodeJSON(resp, &contributors); err != nil {
		return 0
	}
	return len(contributors)
}

func decodeJSON(resp *http.Response, dest interface{}) error {
	return json.NewDecoder(resp.Body).Decode(dest)
}

func (c *Client) headers() map[string]string {
	h := map[string]string{
		"Accept": "application/vnd.github+json",
	}
	if c.token != "" {
		h["Authorization"] = "Bearer " + c.token
	}
	return h
}
