package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xlogger "CoinPulse/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	created := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	pushed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/bitcoin/bitcoin", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"stargazers_count":  75000,
			"forks_count":       35000,
			"watchers_count":    75000,
			"open_issues_count": 700,
			"created_at":        created,
			"pushed_at":         pushed,
			"fork":              false,
			"license":           map[string]string{"name": "MIT License"},
		})
	})
	mux.HandleFunc("/repos/bitcoin/bitcoin/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.NotEmpty(t, r.URL.Query().Get("since"))
		commits := make([]map[string]string, 42)
		for i := range commits {
			commits[i] = map[string]string{"sha": "abc"}
		}
		_ = json.NewEncoder(w).Encode(commits)
	})
	mux.HandleFunc("/repos/bitcoin/bitcoin/contributors", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		w.Header().Set("Link", `<https://api.github.com/repositories/1/contributors?per_page=1&page=2>; rel="next", <https://api.github.com/repositories/1/contributors?per_page=1&page=1234>; rel="last"`)
		_ = json.NewEncoder(w).Encode([]map[string]string{{"login": "satoshi"}})
	})
	return httptest.NewServer(mux)
}

func TestGetMetrics(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c := New(ts.URL, "", 0, xlogger.Nop())
	m := c.GetMetrics(context.Background(), "bitcoin", "bitcoin")
	require.NotNil(t, m)

	assert.Equal(t, "https://github.com/bitcoin/bitcoin", m.URL)
	assert.Equal(t, 75000, m.Stars)
	assert.Equal(t, 35000, m.Forks)
	assert.Equal(t, 700, m.OpenIssues)
	assert.False(t, m.IsFork)
	require.NotNil(t, m.License)
	assert.Equal(t, "MIT License", *m.License)
	require.NotNil(t, m.LastCommit)

	assert.Equal(t, 42, m.CommitsYear)
	assert.Equal(t, 1234, m.Contributors, "contributor count comes from the Link header's last page")
}

func TestGetMetricsUnknownRepoIsNil(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := New(ts.URL, "", 0, xlogger.Nop())
	assert.Nil(t, c.GetMetrics(context.Background(), "nobody", "nothing"))
}

func TestGetMetricsSubResourceFailuresDegrade(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"stargazers_count": 10})
	})
	// commits and contributors endpoints 500
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := New(ts.URL, "", 0, xlogger.Nop())
	m := c.GetMetrics(context.Background(), "acme", "widget")
	require.NotNil(t, m, "a broken sub-resource must not lose the repo snapshot")
	assert.Equal(t, 10, m.Stars)
	assert.Zero(t, m.CommitsYear)
	assert.Zero(t, m.Contributors)
	assert.Nil(t, m.License)
}

func TestAuthHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	New(ts.URL, "tok123", 0, xlogger.Nop()).GetMetrics(context.Background(), "a", "b")
	assert.Equal(t, "Bearer tok123", gotAuth)
}
