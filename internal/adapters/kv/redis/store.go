// Package redis keeps key-value entries in Redis under a key prefix.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/ports"
	goredis "github.com/go-redis/redis/v8"
)

const DefaultPrefix = "primemall:"

type Store struct {
	client *goredis.Client
	prefix string
}

var _ ports.KeyValueStore = (*Store)(nil)

func NewStore(client *goredis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr string) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return NewStore(client, DefaultPrefix), nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	full, err := s.fullKey(key)
	if err != nil {
		return nil, err
	}

	value, err := s.client.Get(ctx, full).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("redis entry %q: %w", key, domain.ErrKeyNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read redis entry %q: %w", key, err)
	}

	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	full, err := s.fullKey(key)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, full, value, 0).Err(); err != nil {
		return fmt.Errorf("write redis entry %q: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	full, err := s.fullKey(key)
	if err != nil {
		return err
	}

	if err := s.client.Del(ctx, full).Err(); err != nil {
		return fmt.Errorf("delete redis entry %q: %w", key, err)
	}

	return nil
}

func (s *Store) fullKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("entry key is empty")
	}

	return s.prefix + key, nil
}
