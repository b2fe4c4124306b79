package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/ports"
)

// CredentialKey is where `pm credential set` keeps the ledger credential.
const CredentialKey = "primemall/ledger/credential"

var ErrCredentialMissing = errors.New("ledger credential is not configured")

type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

// StaticCredential is a credential taken from configuration.
type StaticCredential string

func (c StaticCredential) Credential(context.Context) (string, error) {
	value := strings.TrimSpace(string(c))
	if value == "" {
		return "", ErrCredentialMissing
	}

	return value, nil
}

// StoredCredential prefers a configured value and falls back to the secret
// store.
type StoredCredential struct {
	Static string
	Store  ports.KeyValueStore
	Key    string
}

func (c StoredCredential) Credential(ctx context.Context) (string, error) {
	if value := strings.TrimSpace(c.Static); value != "" {
		return value, nil
	}
	if c.Store == nil {
		return "", ErrCredentialMissing
	}

	key := c.Key
	if key == "" {
		key = CredentialKey
	}

	raw, err := c.Store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return "", ErrCredentialMissing
		}
		return "", fmt.Errorf("read ledger credential: %w", err)
	}

	value := strings.TrimSpace(string(raw))
	if value == "" {
		return "", ErrCredentialMissing
	}

	return value, nil
}

// CredentialService stores and removes the ledger credential.
type CredentialService struct {
	store ports.KeyValueStore
}

func NewCredentialService(store ports.KeyValueStore) *CredentialService {
	return &CredentialService{store: store}
}

func (s *CredentialService) Set(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("credential value is required")
	}
	if err := s.store.Put(ctx, CredentialKey, []byte(value)); err != nil {
		return fmt.Errorf("store ledger credential: %w", err)
	}

	return nil
}

func (s *CredentialService) Remove(ctx context.Context) error {
	if err := s.store.Delete(ctx, CredentialKey); err != nil {
		return fmt.Errorf("delete ledger credential: %w", err)
	}

	return nil
}
