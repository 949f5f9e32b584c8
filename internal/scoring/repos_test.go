package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoForCoinMappingWinsOverURL(t *testing.T) {
	repo, ok := RepoForCoin("ethereum", "https://github.com/someone/fork")
	require.True(t, ok)
	assert.Equal(t, Repo{"ethereum", "go-ethereum"}, repo)

	// Mapping lookup is case-insensitive.
	repo, ok = RepoForCoin("Bitcoin", "")
	require.True(t, ok)
	assert.Equal(t, Repo{"bitcoin", "bitcoin"}, repo)
}

func TestRepoForCoinFallsBackToURL(t *testing.T) {
	repo, ok := RepoForCoin("some-token", "https://github.com/acme/token-core")
	require.True(t, ok)
	assert.Equal(t, Repo{Owner: "acme", Name: "token-core"}, repo)

	_, ok = RepoForCoin("some-token", "")
	assert.False(t, ok)
}

func TestExtractOwnerRepo(t *testing.T) {
	cases := []struct {
		url  string
		want Repo
		ok   bool
	}{
		{"https://github.com/acme/widget", Repo{"acme", "widget"}, true},
		{"http://github.com/acme/widget/", Repo{"acme", "widget"}, true},
		{"https://github.com/acme", Repo{}, false},
		{"https://gitlab.com/acme/widget", Repo{}, false},
		{"", Repo{}, false},
	}
	for _, tc := range cases {
		got, ok := ExtractOwnerRepo(tc.url)
		assert.Equal(t, tc.ok, ok, tc.url)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.url)
		}
	}
}
