package coingecko

// MarketRecord is one entry from the provider's /coins/markets
// endpoint, in the provider's vocabulary.
type MarketRecord struct {
	ID                 string  `json:"id"`
	Symbol             string  `json:"symbol"`
	Name               string  `json:"name"`
	Image              string  `json:"image"`
	CurrentPrice       float64 `json:"current_price"`
	MarketCap          float64 `json:"market_cap"`
	TotalVolume        float64 `json:"total_volume"`
	High24h            float64 `json:"high_24h"`
	Low24h             float64 `json:"low_24h"`
	PriceChange24h     float64 `json:"price_change_24h"`
	PriceChangePct24h  float64 `json:"price_change_percentage_24h"`
	MarketCapChange24h float64 `json:"market_cap_change_24h"`
	MarketCapRank      int     `json:"market_cap_rank"`
}

// SimplePrice is one currency's entry from /simple/price.
type SimplePrice struct {
	USD          float64 `json:"usd"`
	USDMarketCap float64 `json:"usd_market_cap"`
	USD24hVol    float64 `json:"usd_24h_vol"`
	USD24hChange float64 `json:"usd_24h_change"`
}

// trendingResponse mirrors /search/trending.
type trendingResponse struct {
	Coins []struct {
		Item struct {
			ID            string `json:"id"`
			Symbol        string `json:"symbol"`
			Name          string `json:"name"`
			MarketCapRank int    `json:"market_cap_rank"`
			Score         int    `json:"score"`
		} `json:"item"`
	} `json:"coins"`
}

// globalResponse mirrors /global.
type globalResponse struct {
	Data struct {
		ActiveCryptocurrencies int                `json:"active_cryptocurrencies"`
		Markets                int                `json:"markets"`
		TotalMarketCap         map[string]float64 `json:"total_market_cap"`
		TotalVolume            map[string]float64 `json:"total_volume"`
		MarketCapPercentage    map[string]float64 `json:"market_cap_percentage"`
	} `json:"data"`
}
