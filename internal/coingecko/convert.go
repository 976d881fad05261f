package coingecko

import (
	"strings"

	"github.com/ghaggin/cryptodash/internal/model"
)

// ToPriceRecord normalizes a provider record into the canonical
// vocabulary: the symbol is uppercased, change fields are renamed,
// everything else copies verbatim. Absent numeric fields pass through
// as zero exactly as the provider sent them.
func (r *MarketRecord) ToPriceRecord() model.PriceRecord {
	return model.PriceRecord{
		Symbol:        strings.ToUpper(r.Symbol),
		Name:          r.Name,
		Price:         r.CurrentPrice,
		Change:        r.PriceChange24h,
		ChangePercent: r.PriceChangePct24h,
		High24h:       r.High24h,
		Low24h:        r.Low24h,
		Volume:        r.TotalVolume,
		MarketCap:     r.MarketCap,
		Image:         r.Image,
	}
}
