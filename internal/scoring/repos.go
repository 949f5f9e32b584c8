package scoring

import "strings"

// Repo identifies a source repository by owner and name.
type Repo struct {
	Owner string
	Name  string
}

// repoMapping pins well-known coins to their main repository. The mapping
// wins over link metadata, which often lists forks or mirrors first.
var repoMapping = map[string]Repo{
	"bitcoin":  {"bitcoin", "bitcoin"},
	"ethereum": {"ethereum", "go-ethereum"},
	"cardano":  {"input-output-hk", "cardano-sl"},
	"solana":   {"solana-labs", "solana"},
	"polkadot": {"paritytech", "polkadot"},
	"ripple":   {"XRPLF", "rippled"},
	"dogecoin": {"dogecoin", "dogecoin"},
	"litecoin": {"litecoin-project", "litecoin"},
	"monero":   {"monero-project", "monero"},
	"zcash":    {"zcash", "zcash"},
}

// RepoForCoin resolves a coin to its repository: the static mapping first,
// then owner/repo extraction from the given GitHub URL. Returns false when
// neither yields one, which is valid for many assets.
func RepoForCoin(coinID, githubURL string) (Repo, bool) {
	if r, ok := repoMapping[strings.ToLower(coinID)]; ok {
		return r, true
	}
	if githubURL != "" {
		return ExtractOwnerRepo(githubURL)
	}
	return Repo{}, false
}

// ExtractOwnerRepo pulls owner and repo out of a GitHub URL.
func ExtractOwnerRepo(githubURL string) (Repo, bool) {
	url := strings.TrimPrefix(githubURL, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimRight(url, "/")

	parts := strings.Split(url, "/")
	if len(parts) >= 3 && strings.Contains(parts[0], "github.com") {
		return Repo{Owner: parts[1], Name: parts[2]}, true
	}
	return Repo{}, false
}
