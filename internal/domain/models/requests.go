package models

// UpdateCacheRequest selects which coins a refresh targets. Exactly one of
// CoinID, CoinIDs or Popular should be set; precedence is in that order.
type UpdateCacheRequest struct {
	CoinID  string   `json:"coin_id"`
	CoinIDs []string `json:"coin_ids" validate:"omitempty,max=100,dive,required"`
	Popular bool     `json:"popular"`
	Limit   int      `json:"limit" default:"10" validate:"omitempty,gt=0,lte=100"`
}

// HasTarget reports whether the request names any coins to refresh.
func (r *UpdateCacheRequest) HasTarget() bool {
	return r.CoinID != "" || len(r.CoinIDs) > 0 || r.Popular
}
