package coingecko

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ToPriceRecord(t *testing.T) {
	assert := assert.New(t)

	r := MarketRecord{
		ID:                "bitcoin",
		Symbol:            "btc",
		Name:              "Bitcoin",
		Image:             "https://example.com/btc.png",
		CurrentPrice:      50123.45,
		MarketCap:         1.2e12,
		TotalVolume:       3.4e10,
		High24h:           51000,
		Low24h:            49500,
		PriceChange24h:    -250.5,
		PriceChangePct24h: -0.49,
	}

	p := r.ToPriceRecord()

	// Symbol is uppercased; every other field is a rename with the
	// value unchanged.
	assert.Equal("BTC", p.Symbol)
	assert.Equal(r.Name, p.Name)
	assert.Equal(r.CurrentPrice, p.Price)
	assert.Equal(r.PriceChange24h, p.Change)
	assert.Equal(r.PriceChangePct24h, p.ChangePercent)
	assert.Equal(r.High24h, p.High24h)
	assert.Equal(r.Low24h, p.Low24h)
	assert.Equal(r.TotalVolume, p.Volume)
	assert.Equal(r.MarketCap, p.MarketCap)
	assert.Equal(r.Image, p.Image)
}

func Test_ToPriceRecord_absentFieldsPassThrough(t *testing.T) {
	assert := assert.New(t)

	p := (&MarketRecord{Symbol: "eth", Name: "Ethereum"}).ToPriceRecord()

	assert.Equal("ETH", p.Symbol)
	assert.Zero(p.Price)
	assert.Zero(p.High24h)
	assert.Empty(p.Image)
}

func Test_CoinID(t *testing.T) {
	assert := assert.New(t)

	id, ok := CoinID("btc")
	assert.True(ok)
	assert.Equal("bitcoin", id)

	_, ok = CoinID("ZZZ")
	assert.False(ok)

	sym, ok := SymbolForID("avalanche-2")
	assert.True(ok)
	assert.Equal("AVAX", sym)

	assert.Len(SupportedSymbols(), 10)
}
