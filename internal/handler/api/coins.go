// Package api wires the coin-trust HTTP surface onto Echo.
package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/provider"
	svccache "CoinPulse/internal/service/cache"
	"CoinPulse/internal/usecase"
	xhttp "CoinPulse/pkg/http"
	xlogger "CoinPulse/pkg/logger"
)

// CoinsHandler exposes scoring, tokenomics and cache management endpoints.
type CoinsHandler struct {
	logger  *xlogger.Logger
	data    *usecase.DataService
	scores  *usecase.ScoreService
	refresh *usecase.CacheUpdater
	aliases *svccache.AliasUpdater
	cache   *svccache.Service
}

func NewCoinsHandler(
	logger *xlogger.Logger,
	data *usecase.DataService,
	scores *usecase.ScoreService,
	refresh *usecase.CacheUpdater,
	aliases *svccache.AliasUpdater,
	cache *svccache.Service,
) *CoinsHandler {
	return &CoinsHandler{
		logger:  logger,
		data:    data,
		scores:  scores,
		refresh: refresh,
		aliases: aliases,
		cache:   cache,
	}
}

func (h *CoinsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/score/:id", h.Score)
	g.GET("/tokenomics/:id", h.Tokenomics)
	g.GET("/coins/:id", h.Coin)
	g.GET("/alias/:term", h.Alias)
	g.GET("/cache-stats", h.CacheStats)
	g.GET("/providers/health", h.ProvidersHealth)
	g.POST("/update-cache", h.UpdateCache)
	g.POST("/update-aliases", h.UpdateAliases)
}

// Score returns the weighted trust score with its full factor breakdown.
func (h *CoinsHandler) Score(c echo.Context) error {
	coinID := c.Param("id")
	if coinID == "" {
		return xhttp.BadRequestResponse(c, "coin id is required")
	}

	res, err := h.scores.GetScore(c.Request().Context(), coinID)
	if err != nil {
		return h.providerErrorResponse(c, coinID, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Tokenomics returns the supply and market snapshot, cached on a short TTL.
// ?force_refresh=true bypasses the cache and rewrites it.
func (h *CoinsHandler) Tokenomics(c echo.Context) error {
	coinID := c.Param("id")
	if coinID == "" {
		return xhttp.BadRequestResponse(c, "coin id is required")
	}
	force := c.QueryParam("force_refresh") == "true"

	res, err := h.data.GetTokenomics(c.Request().Context(), coinID, force)
	if err != nil {
		return h.providerErrorResponse(c, coinID, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Coin returns the full live coin payload.
func (h *CoinsHandler) Coin(c echo.Context) error {
	coinID := c.Param("id")
	if coinID == "" {
		return xhttp.BadRequestResponse(c, "coin id is required")
	}

	res, err := h.data.GetCoinData(c.Request().Context(), coinID)
	if err != nil {
		return h.providerErrorResponse(c, coinID, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Alias resolves a symbol or name to its canonical coin ID.
func (h *CoinsHandler) Alias(c echo.Context) error {
	term := c.Param("term")
	if term == "" {
		return xhttp.BadRequestResponse(c, "search term is required")
	}

	id, ok := h.cache.GetAlias(c.Request().Context(), term)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no alias for %q", term))
	}
	return xhttp.SuccessResponse(c, map[string]string{"term": term, "coin_id": id})
}

// UpdateCache force-refreshes cached tokenomics for one coin, an explicit
// list, or the popular warm-up list.
func (h *CoinsHandler) UpdateCache(c echo.Context) error {
	req := &models.UpdateCacheRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !req.HasTarget() {
		return xhttp.BadRequestResponse(c, "one of coin_id, coin_ids or popular is required")
	}

	ctx := c.Request().Context()
	switch {
	case req.CoinID != "":
		result := h.refresh.RefreshOne(ctx, req.CoinID)
		return xhttp.SuccessResponse(c, result)
	case len(req.CoinIDs) > 0:
		return xhttp.SuccessResponse(c, h.refresh.RefreshMany(ctx, req.CoinIDs))
	default:
		return xhttp.SuccessResponse(c, h.refresh.RefreshPopular(ctx, req.Limit))
	}
}

// UpdateAliases rebuilds the entire alias map from the upstream directory.
func (h *CoinsHandler) UpdateAliases(c echo.Context) error {
	res := h.aliases.UpdateAllAliases(c.Request().Context())
	if !res.Success {
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError(res.Error))
	}
	return xhttp.SuccessResponse(c, res)
}

// CacheStats reports store connectivity and usage.
func (h *CoinsHandler) CacheStats(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.cache.Stats(c.Request().Context()))
}

// ProvidersHealth pings every configured provider.
func (h *CoinsHandler) ProvidersHealth(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.data.CheckProviderHealth(c.Request().Context()))
}

// providerErrorResponse maps a provider fallback failure onto an HTTP
// status: rate limiting beats not-found so clients retry instead of
// treating the coin as unknown.
func (h *CoinsHandler) providerErrorResponse(c echo.Context, coinID string, err error) error {
	var all *provider.AllFailedError
	if errors.As(err, &all) {
		switch {
		case all.RateLimited():
			return xhttp.AppErrorResponse(c, xhttp.RateLimitedError("upstream rate limit exceeded, retry shortly").WithError(err))
		case all.NotFound():
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("coin %q not found", coinID).WithError(err))
		default:
			return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("all data providers failed").WithError(err))
		}
	}

	h.logger.Error("unexpected handler error",
		xlogger.String("coin_id", coinID), xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
