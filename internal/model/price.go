package model

// PriceRecord is the canonical, provider-agnostic market snapshot for
// one asset. Exactly one record per symbol appears in each broadcast;
// records are fully replaced on every refresh cycle.
type PriceRecord struct {
	Symbol        string  `json:"symbol"` // uppercased
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"` // absolute 24h delta
	ChangePercent float64 `json:"changePercent"`
	High24h       float64 `json:"high24h"`
	Low24h        float64 `json:"low24h"`
	Volume        float64 `json:"volume"`
	MarketCap     float64 `json:"marketCap"`
	Image         string  `json:"image,omitempty"`
}

// TrendingCoin is one entry from the provider's trending search list.
type TrendingCoin struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank int    `json:"market_cap_rank"`
	Score         int    `json:"score"`
}

// GlobalMarket summarizes provider-wide market statistics.
type GlobalMarket struct {
	ActiveCryptocurrencies int     `json:"active_cryptocurrencies"`
	Markets                int     `json:"markets"`
	TotalMarketCapUSD      float64 `json:"total_market_cap_usd"`
	TotalVolumeUSD         float64 `json:"total_volume_usd"`
	BTCDominance           float64 `json:"btc_dominance"`
}
