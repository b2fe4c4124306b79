package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/ports"
)

const (
	AccountKey    = "session/account"
	CartKey       = "session/cart"
	userKeyPrefix = "users/"
)

// SessionStore persists the session snapshot and the returning-user records
// in a key-value store.
type SessionStore struct {
	kv ports.KeyValueStore
}

func NewSessionStore(kv ports.KeyValueStore) *SessionStore {
	return &SessionStore{kv: kv}
}

func UserKey(email string) string {
	return userKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Load reads the persisted snapshot. Missing keys yield an empty snapshot;
// undecodable or inconsistent data yields domain.ErrInvalidSnapshot.
func (s *SessionStore) Load(ctx context.Context) (domain.Snapshot, error) {
	var snapshot domain.Snapshot

	var account accountRecord
	found, err := s.getJSON(ctx, AccountKey, &account)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if found {
		if account.Version != sessionSchemaVersion {
			return domain.Snapshot{}, fmt.Errorf("%w: unsupported account schema version %d", domain.ErrInvalidSnapshot, account.Version)
		}
		acc := account.toDomain()
		snapshot.Account = &acc
	}

	var cart cartRecord
	found, err = s.getJSON(ctx, CartKey, &cart)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if found {
		if cart.Version != sessionSchemaVersion {
			return domain.Snapshot{}, fmt.Errorf("%w: unsupported cart schema version %d", domain.ErrInvalidSnapshot, cart.Version)
		}
		snapshot.Cart = cart.toDomain()
	}

	if err := snapshot.Validate(); err != nil {
		return domain.Snapshot{}, err
	}

	return snapshot, nil
}

// Save writes the account before the cart. A signed-out snapshot removes
// both keys, cart first.
func (s *SessionStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if snapshot.Account == nil {
		return s.Clear(ctx)
	}

	if err := s.putJSON(ctx, AccountKey, toAccountRecord(*snapshot.Account)); err != nil {
		return fmt.Errorf("save session account: %w", err)
	}
	if err := s.putJSON(ctx, CartKey, toCartRecord(snapshot.Cart)); err != nil {
		return fmt.Errorf("save session cart: %w", err)
	}

	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, CartKey); err != nil {
		return fmt.Errorf("delete session cart: %w", err)
	}
	if err := s.kv.Delete(ctx, AccountKey); err != nil {
		return fmt.Errorf("delete session account: %w", err)
	}

	return nil
}

// LoadUser returns the returning-user record for email.
func (s *SessionStore) LoadUser(ctx context.Context, email string) (domain.Account, bool, error) {
	var record accountRecord
	found, err := s.getJSON(ctx, UserKey(email), &record)
	if err != nil || !found {
		return domain.Account{}, false, err
	}

	return record.toDomain(), true, nil
}

func (s *SessionStore) SaveUser(ctx context.Context, account domain.Account) error {
	if err := s.putJSON(ctx, UserKey(account.Email), toAccountRecord(account)); err != nil {
		return fmt.Errorf("save user record: %w", err)
	}

	return nil
}

func (s *SessionStore) getJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", domain.ErrInvalidSnapshot, key, err)
	}

	return true, nil
}

func (s *SessionStore) putJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return s.kv.Put(ctx, key, raw)
}
