package models

// RefreshResult is the outcome of refreshing cached data for one coin.
type RefreshResult struct {
	CoinID  string   `json:"coin_id"`
	Updated bool     `json:"updated"`
	Errors  []string `json:"errors"`
}

// RefreshSummary aggregates a batch refresh. One item failing never aborts
// the batch, so Succeeded+Failed always equals Total.
type RefreshSummary struct {
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Results   []RefreshResult `json:"results"`
}

// AliasSyncResult reports a bulk alias resync.
type AliasSyncResult struct {
	Success        bool   `json:"success"`
	AliasesUpdated int    `json:"aliases_updated"`
	CoinsProcessed int    `json:"coins_processed"`
	Error          string `json:"error,omitempty"`
}

// CacheStats is a point-in-time view of the cache store.
type CacheStats struct {
	Connected        bool   `json:"connected"`
	TotalKeys        int64  `json:"total_keys"`
	UsedMemoryHuman  string `json:"used_memory_human,omitempty"`
	ConnectedClients int64  `json:"connected_clients,omitempty"`
	Error            string `json:"error,omitempty"`
}
