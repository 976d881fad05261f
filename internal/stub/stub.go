// Package stub runs a local fake of both external collaborators: the
// authentication backend and the market-data backend. It exists for
// developing the client against deterministic data; nothing in it is
// reachable from the production wiring.
package stub

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ghaggin/cryptodash/internal/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Server hosts the fake backends on one port.
type Server struct {
	log    *zap.Logger
	server *http.Server
}

// Params are the fx dependencies for the stub server.
type Params struct {
	fx.In

	Log    *zap.Logger
	Config *config.Config
}

// New builds the stub server.
func New(p Params) (*Server, error) {
	root := chi.NewRouter()

	h := &handlers{
		log:   p.Log,
		users: p.Config.Stub.Users,
	}

	root.Post("/auth/login", h.login)
	root.Get("/coins/markets", h.markets)
	root.Get("/simple/price", h.simplePrice)
	root.Get("/search/trending", h.trending)
	root.Get("/global", h.global)

	return &Server{
		log: p.Log,
		server: &http.Server{
			Addr:    fmt.Sprintf("localhost:%d", p.Config.Stub.Port),
			Handler: root,
		},
	}, nil
}

// RegisterHooks should be invoked by fx.
func RegisterHooks(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.server.Shutdown,
	})
}

func (s *Server) Start(_ context.Context) error {
	s.log.Info("stub backends listening", zap.String("addr", s.server.Addr))
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			s.log.Error("error starting stub server", zap.Error(err))
		}
	}()
	return nil
}
