// Package app wires the session manager and price poller into a
// runnable headless client: log in, check dashboard access, start the
// watchlist poll, and log each snapshot.
package app

import (
	"context"

	"github.com/ghaggin/cryptodash/internal/config"
	"github.com/ghaggin/cryptodash/internal/guard"
	"github.com/ghaggin/cryptodash/internal/model"
	"github.com/ghaggin/cryptodash/internal/poller"
	"github.com/ghaggin/cryptodash/internal/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// App is the client process.
type App struct {
	log     *zap.Logger
	cfg     *config.Config
	session *session.Manager
	poller  *poller.Poller

	unsubSession func()
	unsubPrices  func()
}

// Params are the fx dependencies for the App.
type Params struct {
	fx.In

	Log     *zap.Logger
	Config  *config.Config
	Session *session.Manager
	Poller  *poller.Poller
}

// New builds the App.
func New(p Params) (*App, error) {
	return &App{
		log:     p.Log,
		cfg:     p.Config,
		session: p.Session,
		poller:  p.Poller,
	}, nil
}

// NewNavigator returns the navigation collaborator. Headless clients
// have no router, so navigation is surfaced as a log event.
func NewNavigator(log *zap.Logger) session.Navigator {
	return session.NavigatorFunc(func(route string) {
		log.Info("navigating", zap.String("route", route))
	})
}

// RegisterHooks should be invoked by fx.
func RegisterHooks(lc fx.Lifecycle, a *App) {
	lc.Append(fx.Hook{
		OnStart: a.Start,
		OnStop:  a.Stop,
	})
}

func (a *App) Start(ctx context.Context) error {
	a.unsubSession = a.session.Subscribe(ctx, func(s *model.Session) {
		if s.LoggedIn() {
			a.log.Info("session changed",
				zap.String("username", s.Username),
				zap.Strings("roles", s.Roles()),
			)
			return
		}
		a.log.Info("session cleared")
	})

	if a.cfg.App.AutoLogin && !a.session.IsLoggedIn(ctx) {
		if _, err := a.session.Login(ctx, a.cfg.App.Username, a.cfg.App.Password); err != nil {
			// Login errors are user-displayable; here the display
			// surface is the log.
			a.log.Error("login failed", zap.Error(err))
		}
	}

	d := guard.Decide(a.session.Current(ctx), a.cfg.App.RequiredRoles)
	if !d.Allow {
		a.log.Warn("dashboard access denied", zap.String("redirect", d.RedirectTo))
		return nil
	}

	a.unsubPrices = a.poller.Subscribe(func(records []model.PriceRecord) {
		for _, rec := range records {
			a.log.Info("price update",
				zap.String("symbol", rec.Symbol),
				zap.Float64("price", rec.Price),
				zap.Float64("change_pct", rec.ChangePercent),
			)
		}
	})

	a.poller.Start(a.cfg.App.Watchlist)
	return nil
}

func (a *App) Stop(_ context.Context) error {
	a.poller.Stop()

	if a.unsubPrices != nil {
		a.unsubPrices()
	}
	if a.unsubSession != nil {
		a.unsubSession()
	}

	return nil
}
