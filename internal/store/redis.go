package store

import (
	"context"
	"fmt"

	"github.com/ghaggin/cryptodash/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const credentialsKey = "cryptodash:credentials"

// redisStore keeps the credential pair in a single hash so both
// fields are written and deleted in one command.
type redisStore struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedis returns a redis-backed Store, pinging the server once to
// fail fast on misconfiguration.
func NewRedis(cfg config.RedisConfig, log *zap.Logger) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &redisStore{
		client: client,
		log:    log,
	}, nil
}

func (s *redisStore) Load(ctx context.Context) (*Credentials, error) {
	fields, err := s.client.HGetAll(ctx, credentialsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	creds := Credentials{
		Token:    fields["token"],
		Username: fields["username"],
	}
	if creds.Token == "" || creds.Username == "" {
		return nil, ErrNotFound
	}

	return &creds, nil
}

func (s *redisStore) Save(ctx context.Context, creds Credentials) error {
	err := s.client.HSet(ctx, credentialsKey,
		"token", creds.Token,
		"username", creds.Username,
	).Err()
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, credentialsKey).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
