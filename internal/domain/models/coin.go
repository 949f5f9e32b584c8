package models

// Tokenomics is the cached market snapshot for a coin. Providers do not
// guarantee completeness, so every numeric field is nullable.
type Tokenomics struct {
	Name              string   `json:"name"`
	Symbol            string   `json:"symbol"`
	MarketCap         *float64 `json:"market_cap"`
	CirculatingSupply *float64 `json:"circulating_supply"`
	TotalSupply       *float64 `json:"total_supply"`
	MaxSupply         *float64 `json:"max_supply"`
}

// CoinData is the rich per-coin payload returned by a market data provider.
// It is always fetched live, never cached.
type CoinData struct {
	ID         string     `json:"id"`
	Symbol     string     `json:"symbol"`
	Name       string     `json:"name"`
	MarketData MarketData `json:"market_data"`
	Links      CoinLinks  `json:"links"`
}

// MarketData holds per-currency aggregates keyed by currency code ("usd", ...).
type MarketData struct {
	MarketCap         map[string]float64 `json:"market_cap"`
	TotalVolume       map[string]float64 `json:"total_volume"`
	CirculatingSupply *float64           `json:"circulating_supply"`
	TotalSupply       *float64           `json:"total_supply"`
	MaxSupply         *float64           `json:"max_supply"`
}

// CoinLinks carries the subset of provider link metadata the scorer needs.
type CoinLinks struct {
	Homepage []string  `json:"homepage"`
	ReposURL RepoLinks `json:"repos_url"`
}

// RepoLinks lists source repositories by hosting site.
type RepoLinks struct {
	GitHub []string `json:"github"`
}

// MarketCapUSD returns the USD market cap, or 0 when absent.
func (d *CoinData) MarketCapUSD() float64 {
	return d.MarketData.MarketCap["usd"]
}

// TotalVolumeUSD returns the USD 24h volume, or 0 when absent.
func (d *CoinData) TotalVolumeUSD() float64 {
	return d.MarketData.TotalVolume["usd"]
}

// CoinListEntry is one row of the upstream coin directory used to build
// alias mappings.
type CoinListEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
