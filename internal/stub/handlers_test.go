package stub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghaggin/cryptodash/internal/claims"
	"github.com/ghaggin/cryptodash/internal/coingecko"
	"github.com/ghaggin/cryptodash/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testHandlers() *handlers {
	return &handlers{
		log: zap.NewNop(),
		users: []config.StubUser{
			{Username: "a@b.com", Password: "x", Roles: []string{"CLIENT"}, Email: "a@b.com"},
		},
	}
}

func Test_login(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	h := testHandlers()

	body, _ := json.Marshal(map[string]string{"username": "a@b.com", "password": "x"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.login(rr, req)
	require.Equal(http.StatusOK, rr.Code)

	var resp struct {
		Username string   `json:"username"`
		Token    string   `json:"token"`
		Roles    []string `json:"roles"`
	}
	require.NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal("a@b.com", resp.Username)
	assert.Equal([]string{"CLIENT"}, resp.Roles)

	// The minted token decodes client-side into the same claims.
	c, err := claims.Decode(resp.Token)
	require.NoError(err)
	assert.Equal([]string{"CLIENT"}, c.Roles)
	assert.Equal("a@b.com", c.Email)
	assert.NotZero(c.ExpiresAt)
}

func Test_login_badPassword(t *testing.T) {
	require := require.New(t)

	h := testHandlers()

	body, _ := json.Marshal(map[string]string{"username": "a@b.com", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.login(rr, req)
	require.Equal(http.StatusUnauthorized, rr.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(resp.Message)
}

func Test_markets(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	h := testHandlers()

	req := httptest.NewRequest(http.MethodGet, "/coins/markets?ids=bitcoin,ethereum,unknown-coin", nil)
	rr := httptest.NewRecorder()

	h.markets(rr, req)
	require.Equal(http.StatusOK, rr.Code)

	var records []coingecko.MarketRecord
	require.NoError(json.Unmarshal(rr.Body.Bytes(), &records))

	// Unknown ids are skipped, known ids produce stable records.
	require.Len(records, 2)
	assert.Equal("bitcoin", records[0].ID)
	assert.Equal("btc", records[0].Symbol)
	assert.NotZero(records[0].CurrentPrice)
}

func Test_simplePrice(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	h := testHandlers()

	req := httptest.NewRequest(http.MethodGet, "/simple/price?ids=solana", nil)
	rr := httptest.NewRecorder()

	h.simplePrice(rr, req)
	require.Equal(http.StatusOK, rr.Code)

	var resp map[string]coingecko.SimplePrice
	require.NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Contains(resp, "solana")
	assert.NotZero(resp["solana"].USD)
}
