package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

var (
	errStoreFileIsDir = errors.New("store file is dir")
)

// jsonStore persists credentials as a single JSON file. Writes go
// through a temp-file rename so the token/username pair is replaced
// atomically.
type jsonStore struct {
	path string
	log  *zap.Logger

	mu sync.Mutex
}

// NewJSON returns a file-backed Store at the given path.
func NewJSON(path string, log *zap.Logger) Store {
	return &jsonStore{
		path: path,
		log:  log,
	}
}

func (s *jsonStore) Load(_ context.Context) (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	finfo, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if finfo.IsDir() {
		return nil, errStoreFileIsDir
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var creds Credentials
	if err := json.NewDecoder(f).Decode(&creds); err != nil {
		// A corrupted file degrades to "no session", it is never
		// surfaced past the session manager.
		s.log.Warn("failed decoding credential file", zap.Error(err))
		return nil, ErrNotFound
	}

	if creds.Token == "" || creds.Username == "" {
		return nil, ErrNotFound
	}

	return &creds, nil
}

func (s *jsonStore) Save(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(&creds, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

func (s *jsonStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
