// Package store persists the current credential pair durably across
// process restarts. The pair is written and cleared atomically: a
// token is never stored without its username.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghaggin/cryptodash/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrNotFound = errors.New("no stored credentials")
)

// Credentials is the durable slice of a session.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Store is the credential persistence contract. Implementations have
// exactly one writer, the session manager.
type Store interface {
	Load(ctx context.Context) (*Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}

// Params are the fx dependencies for constructing a Store.
type Params struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
}

// New constructs the Store selected by storage.backend.
func New(p Params) (Store, error) {
	switch p.Config.Storage.Backend {
	case config.StorageFile:
		return NewJSON(p.Config.Storage.Path, p.Log), nil
	case config.StorageRedis:
		return NewRedis(p.Config.Storage.Redis, p.Log)
	case config.StorageMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unrecognized storage backend %q", p.Config.Storage.Backend)
	}
}
