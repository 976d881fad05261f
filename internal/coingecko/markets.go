package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ghaggin/cryptodash/internal/model"
	"go.uber.org/zap"
)

// GetMarketData fetches the batched market snapshot for the given
// symbols and normalizes each record. Unmapped symbols are dropped;
// when none remain, no request is sent at all.
func (c *Client) GetMarketData(ctx context.Context, symbols []string) ([]model.PriceRecord, error) {
	ids := providerIDs(symbols)
	if len(ids) == 0 {
		return []model.PriceRecord{}, nil
	}

	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("ids", strings.Join(ids, ","))
	query.Set("order", "market_cap_desc")
	query.Set("per_page", "50")
	query.Set("page", "1")
	query.Set("sparkline", "false")
	query.Set("price_change_percentage", "24h")

	var records []MarketRecord
	if err := c.get(ctx, "/coins/markets", query, &records); err != nil {
		return nil, fmt.Errorf("get market data: %w", err)
	}

	prices := make([]model.PriceRecord, 0, len(records))
	for _, r := range records {
		prices = append(prices, r.ToPriceRecord())
	}

	return prices, nil
}

// GetSimplePrices fetches spot prices keyed by provider identifier.
// Fail-soft: any upstream error yields an empty map.
func (c *Client) GetSimplePrices(ctx context.Context, symbols []string) map[string]SimplePrice {
	ids := providerIDs(symbols)
	if len(ids) == 0 {
		return map[string]SimplePrice{}
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", "usd")
	query.Set("include_market_cap", "true")
	query.Set("include_24hr_vol", "true")
	query.Set("include_24hr_change", "true")

	prices := map[string]SimplePrice{}
	if err := c.get(ctx, "/simple/price", query, &prices); err != nil {
		c.log.Warn("failed fetching simple prices", zap.Error(err))
		return map[string]SimplePrice{}
	}

	return prices
}

// GetCoinPrice fetches a single symbol's spot price. Fail-soft: an
// unknown symbol or upstream error yields zero.
func (c *Client) GetCoinPrice(ctx context.Context, symbol string) float64 {
	id, ok := CoinID(symbol)
	if !ok {
		return 0
	}

	query := url.Values{}
	query.Set("ids", id)
	query.Set("vs_currencies", "usd")

	prices := map[string]SimplePrice{}
	if err := c.get(ctx, "/simple/price", query, &prices); err != nil {
		c.log.Warn("failed fetching coin price",
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		return 0
	}

	return prices[id].USD
}

// GetTrendingCoins fetches the provider's trending list. Fail-soft:
// errors yield an empty list.
func (c *Client) GetTrendingCoins(ctx context.Context) []model.TrendingCoin {
	var resp trendingResponse
	if err := c.get(ctx, "/search/trending", nil, &resp); err != nil {
		c.log.Warn("failed fetching trending coins", zap.Error(err))
		return []model.TrendingCoin{}
	}

	coins := make([]model.TrendingCoin, 0, len(resp.Coins))
	for _, entry := range resp.Coins {
		coins = append(coins, model.TrendingCoin{
			ID:            entry.Item.ID,
			Symbol:        strings.ToUpper(entry.Item.Symbol),
			Name:          entry.Item.Name,
			MarketCapRank: entry.Item.MarketCapRank,
			Score:         entry.Item.Score,
		})
	}

	return coins
}

// GetGlobalData fetches provider-wide market statistics. Fail-soft:
// errors yield a zero-valued summary.
func (c *Client) GetGlobalData(ctx context.Context) *model.GlobalMarket {
	var resp globalResponse
	if err := c.get(ctx, "/global", nil, &resp); err != nil {
		c.log.Warn("failed fetching global data", zap.Error(err))
		return &model.GlobalMarket{}
	}

	return &model.GlobalMarket{
		ActiveCryptocurrencies: resp.Data.ActiveCryptocurrencies,
		Markets:                resp.Data.Markets,
		TotalMarketCapUSD:      resp.Data.TotalMarketCap["usd"],
		TotalVolumeUSD:         resp.Data.TotalVolume["usd"],
		BTCDominance:           resp.Data.MarketCapPercentage["btc"],
	}
}
