package main

import (
	"flag"

	"github.com/ghaggin/cryptodash/internal/app"
	"github.com/ghaggin/cryptodash/internal/authapi"
	"github.com/ghaggin/cryptodash/internal/coingecko"
	"github.com/ghaggin/cryptodash/internal/config"
	"github.com/ghaggin/cryptodash/internal/poller"
	"github.com/ghaggin/cryptodash/internal/session"
	"github.com/ghaggin/cryptodash/internal/store"
	"github.com/ghaggin/cryptodash/internal/stub"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newAuthClient(cfg *config.Config, log *zap.Logger) *authapi.Client {
	return authapi.NewClient(cfg.Auth.BaseURL,
		authapi.WithTimeout(cfg.Auth.Timeout),
		authapi.WithLogger(log),
	)
}

func newMarketClient(cfg *config.Config, log *zap.Logger) *coingecko.Client {
	return coingecko.NewClient(cfg.Market.BaseURL,
		coingecko.WithTimeout(cfg.Market.Timeout),
		coingecko.WithLogger(log),
	)
}

func newPoller(cfg *config.Config, client *coingecko.Client, log *zap.Logger) *poller.Poller {
	return poller.New(poller.Config{Interval: cfg.Market.PollInterval}, client, log)
}

func main() {
	var mode = flag.String("mode", "app", "either app or stub")
	flag.Parse()

	deps := fx.Options(
		fx.Provide(
			zap.NewDevelopment,
			config.New,
		),
	)

	var fxApp *fx.App
	if *mode == "app" {
		fxApp = fx.New(
			deps,
			fx.Provide(
				store.New,
				newAuthClient,
				func(c *authapi.Client) session.AuthClient { return c },
				app.NewNavigator,
				session.New,
				newMarketClient,
				newPoller,
				app.New,
			),
			fx.Invoke(app.RegisterHooks),
		)
	} else if *mode == "stub" {
		fxApp = fx.New(
			deps,
			fx.Provide(stub.New),
			fx.Invoke(stub.RegisterHooks),
		)
	} else {
		panic("unrecognized mode")
	}

	fxApp.Run()
}
