package config

import "time"

// Default values for optional configuration fields. The 30s poll
// interval keeps the client inside the market provider's rate limit.
const (
	DefaultAuthURL      = "http://localhost:8124"
	DefaultMarketURL    = "https://api.coingecko.com/api/v3"
	DefaultAuthTimeout  = 10 * time.Second
	DefaultFetchTimeout = 10 * time.Second
	DefaultPollInterval = 30 * time.Second
	DefaultStoragePath  = "./data/credentials.json"
	DefaultStubPort     = 8124
)

func (c *Config) applyDefaults() {
	if c.Auth.BaseURL == "" {
		c.Auth.BaseURL = DefaultAuthURL
	}
	if c.Auth.Timeout == 0 {
		c.Auth.Timeout = DefaultAuthTimeout
	}

	if c.Market.BaseURL == "" {
		c.Market.BaseURL = DefaultMarketURL
	}
	if c.Market.Timeout == 0 {
		c.Market.Timeout = DefaultFetchTimeout
	}
	if c.Market.PollInterval == 0 {
		c.Market.PollInterval = DefaultPollInterval
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageFile
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStoragePath
	}

	if len(c.App.Watchlist) == 0 {
		c.App.Watchlist = []string{"BTC", "ETH", "SOL"}
	}

	if c.Stub.Port == 0 {
		c.Stub.Port = DefaultStubPort
	}
	if len(c.Stub.Users) == 0 {
		c.Stub.Users = []StubUser{
			{
				Username:  "a@b.com",
				Password:  "x",
				Roles:     []string{"CLIENT"},
				Email:     "a@b.com",
				FirstName: "Ada",
				LastName:  "Bell",
			},
		}
	}
}
