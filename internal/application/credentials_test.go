package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCredential(t *testing.T) {
	value, err := StaticCredential(" 0xkey ").Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xkey", value)

	_, err = StaticCredential("").Credential(context.Background())
	require.ErrorIs(t, err, ErrCredentialMissing)
}

func TestStoredCredentialPrefersConfiguredValue(t *testing.T) {
	store := mocks.NewMockKeyValueStore(t)

	value, err := StoredCredential{Static: "0xconfig", Store: store}.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xconfig", value)
}

func TestStoredCredentialReadsSecretStore(t *testing.T) {
	store := mocks.NewMockKeyValueStore(t)
	store.EXPECT().Get(mockAnyContext(), CredentialKey).Return([]byte("0xstored\n"), nil).Once()

	value, err := StoredCredential{Store: store}.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xstored", value)
}

func TestStoredCredentialMissing(t *testing.T) {
	store := mocks.NewMockKeyValueStore(t)
	store.EXPECT().Get(mockAnyContext(), CredentialKey).Return(nil, fmt.Errorf("file: %w", domain.ErrKeyNotFound)).Once()

	_, err := StoredCredential{Store: store}.Credential(context.Background())
	require.ErrorIs(t, err, ErrCredentialMissing)
}

func TestStoredCredentialPropagatesStoreErrors(t *testing.T) {
	store := mocks.NewMockKeyValueStore(t)
	store.EXPECT().Get(mockAnyContext(), CredentialKey).Return(nil, errors.New("gpg failed")).Once()

	_, err := StoredCredential{Store: store}.Credential(context.Background())
	assert.ErrorContains(t, err, "read ledger credential: gpg failed")
}

func TestCredentialServiceSetAndRemove(t *testing.T) {
	store := mocks.NewMockKeyValueStore(t)
	service := NewCredentialService(store)

	store.EXPECT().Put(mockAnyContext(), CredentialKey, []byte("0xkey")).Return(nil).Once()
	store.EXPECT().Delete(mockAnyContext(), CredentialKey).Return(nil).Once()

	require.NoError(t, service.Set(context.Background(), " 0xkey "))
	require.NoError(t, service.Remove(context.Background()))
	assert.ErrorContains(t, service.Set(context.Background(), ""), "credential value is required")
}
