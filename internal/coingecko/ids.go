package coingecko

import (
	"sort"
	"strings"
)

// coinIDs maps the system's trading-symbol vocabulary to the
// provider's identifier vocabulary. Symbols without an entry are
// silently dropped from outbound requests.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"ADA":   "cardano",
	"SOL":   "solana",
	"XRP":   "ripple",
	"DOT":   "polkadot",
	"DOGE":  "dogecoin",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
}

// CoinID returns the provider identifier for a symbol.
func CoinID(symbol string) (string, bool) {
	id, ok := coinIDs[strings.ToUpper(symbol)]
	return id, ok
}

// SymbolForID is the reverse lookup, used by the stub backend.
func SymbolForID(id string) (string, bool) {
	for sym, known := range coinIDs {
		if known == id {
			return sym, true
		}
	}
	return "", false
}

// SupportedSymbols returns all mapped symbols in sorted order.
func SupportedSymbols() []string {
	symbols := make([]string, 0, len(coinIDs))
	for sym := range coinIDs {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}

// providerIDs maps symbols to provider identifiers, dropping unknown
// symbols without erroring the batch.
func providerIDs(symbols []string) []string {
	ids := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if id, ok := CoinID(sym); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
