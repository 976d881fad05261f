package stub

import (
	"encoding/json"
	"hash/fnv"
	"net/http"
	"strings"
	"time"

	"github.com/ghaggin/cryptodash/internal/coingecko"
	"github.com/ghaggin/cryptodash/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// signingKey is a throwaway secret. The client never verifies
// signatures, so the key only has to produce a well-formed token.
var signingKey = []byte("cryptodash-stub")

const tokenLifetime = time.Hour

type handlers struct {
	log   *zap.Logger
	users []config.StubUser
}

type tokenClaims struct {
	Roles     []string `json:"roles"`
	Email     string   `json:"email,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	jwt.RegisteredClaims
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed request"})
		return
	}

	user, ok := h.findUser(req.Username, req.Password)
	if !ok {
		h.log.Info("stub login rejected", zap.String("username", req.Username))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid username or password"})
		return
	}

	now := time.Now()
	claims := tokenClaims{
		Roles:     user.Roles,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		h.log.Error("failed signing stub token", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "token signing failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username": user.Username,
		"token":    token,
		"roles":    user.Roles,
	})
}

func (h *handlers) findUser(username, password string) (config.StubUser, bool) {
	for _, u := range h.users {
		if u.Username == username && u.Password == password {
			return u, true
		}
	}
	return config.StubUser{}, false
}

func (h *handlers) markets(w http.ResponseWriter, r *http.Request) {
	ids := splitParam(r.URL.Query().Get("ids"))

	records := make([]coingecko.MarketRecord, 0, len(ids))
	for _, id := range ids {
		symbol, ok := coingecko.SymbolForID(id)
		if !ok {
			continue
		}
		records = append(records, syntheticRecord(id, symbol))
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *handlers) simplePrice(w http.ResponseWriter, r *http.Request) {
	ids := splitParam(r.URL.Query().Get("ids"))

	out := map[string]coingecko.SimplePrice{}
	for _, id := range ids {
		symbol, ok := coingecko.SymbolForID(id)
		if !ok {
			continue
		}
		rec := syntheticRecord(id, symbol)
		out[id] = coingecko.SimplePrice{
			USD:          rec.CurrentPrice,
			USDMarketCap: rec.MarketCap,
			USD24hVol:    rec.TotalVolume,
			USD24hChange: rec.PriceChangePct24h,
		}
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) trending(w http.ResponseWriter, _ *http.Request) {
	type item struct {
		ID            string `json:"id"`
		Symbol        string `json:"symbol"`
		Name          string `json:"name"`
		MarketCapRank int    `json:"market_cap_rank"`
		Score         int    `json:"score"`
	}
	type entry struct {
		Item item `json:"item"`
	}

	coins := []entry{}
	for i, symbol := range coingecko.SupportedSymbols() {
		id, _ := coingecko.CoinID(symbol)
		coins = append(coins, entry{Item: item{
			ID:            id,
			Symbol:        strings.ToLower(symbol),
			Name:          displayName(id),
			MarketCapRank: i + 1,
			Score:         i,
		}})
	}

	writeJSON(w, http.StatusOK, map[string]any{"coins": coins})
}

func (h *handlers) global(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"active_cryptocurrencies": len(coingecko.SupportedSymbols()),
			"markets":                 750,
			"total_market_cap":        map[string]float64{"usd": 2.4e12},
			"total_volume":            map[string]float64{"usd": 9.1e10},
			"market_cap_percentage":   map[string]float64{"btc": 51.2},
		},
	})
}

// syntheticRecord derives a stable fake record from the provider id
// so repeated fetches are deterministic.
func syntheticRecord(id, symbol string) coingecko.MarketRecord {
	hash := fnv.New32a()
	hash.Write([]byte(id))
	seed := float64(hash.Sum32()%100000) / 100

	return coingecko.MarketRecord{
		ID:                id,
		Symbol:            strings.ToLower(symbol),
		Name:              displayName(id),
		Image:             "https://stub.local/coins/" + id + ".png",
		CurrentPrice:      seed,
		MarketCap:         seed * 1e6,
		TotalVolume:       seed * 1e4,
		High24h:           seed * 1.05,
		Low24h:            seed * 0.95,
		PriceChange24h:    seed * 0.01,
		PriceChangePct24h: 1.0,
	}
}

func displayName(id string) string {
	if id == "" {
		return id
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

func splitParam(param string) []string {
	if param == "" {
		return nil
	}
	return strings.Split(param, ",")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
