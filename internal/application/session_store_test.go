package application

import (
	"context"
	"testing"

	filestore "github.com/bnema/primemall-cli/internal/adapters/kv/file"
	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreLoadEmpty(t *testing.T) {
	store := NewSessionStore(filestore.NewStore(t.TempDir()))

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Snapshot{}, snapshot)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(filestore.NewStore(t.TempDir()))
	account := domain.Account{Name: "Ada", Email: "ada@example.com", Funds: 800_01}
	snapshot := domain.Snapshot{
		Account: &account,
		Cart: []domain.CartLine{
			{ItemID: "1", Name: "Premium Wireless Headphones", UnitPrice: 199_99, Quantity: 1},
		},
	}

	require.NoError(t, store.Save(context.Background(), snapshot))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestSessionStoreSaveWritesAccountBeforeCart(t *testing.T) {
	kv := mocks.NewMockKeyValueStore(t)
	store := NewSessionStore(kv)
	account := domain.Account{Name: "Ada", Email: "ada@example.com", Funds: 1000_00}

	mock.InOrder(
		kv.EXPECT().Put(mockAnyContext(), AccountKey, mock.Anything).Return(nil).Once(),
		kv.EXPECT().Put(mockAnyContext(), CartKey, mock.Anything).Return(nil).Once(),
	)

	require.NoError(t, store.Save(context.Background(), domain.Snapshot{Account: &account}))
}

func TestSessionStoreSignedOutSnapshotDeletesCartFirst(t *testing.T) {
	kv := mocks.NewMockKeyValueStore(t)
	store := NewSessionStore(kv)

	mock.InOrder(
		kv.EXPECT().Delete(mockAnyContext(), CartKey).Return(nil).Once(),
		kv.EXPECT().Delete(mockAnyContext(), AccountKey).Return(nil).Once(),
	)

	require.NoError(t, store.Save(context.Background(), domain.Snapshot{}))
}

func TestSessionStoreRejectsInvalidData(t *testing.T) {
	testCases := []struct {
		name    string
		account string
		cart    string
	}{
		{name: "garbage account", account: "not json"},
		{name: "future schema", account: `{"version":9,"name":"Ada","email":"ada@example.com","funds_cents":100}`},
		{name: "negative funds", account: `{"version":1,"name":"Ada","email":"ada@example.com","funds_cents":-1}`},
		{name: "cart without account", cart: `{"version":1,"lines":[{"item_id":"1","unit_price_cents":100,"quantity":1}]}`},
		{name: "zero quantity", account: `{"version":1,"name":"Ada","email":"ada@example.com","funds_cents":100}`, cart: `{"version":1,"lines":[{"item_id":"1","unit_price_cents":100,"quantity":0}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kv := filestore.NewStore(t.TempDir())
			if tc.account != "" {
				require.NoError(t, kv.Put(context.Background(), AccountKey, []byte(tc.account)))
			}
			if tc.cart != "" {
				require.NoError(t, kv.Put(context.Background(), CartKey, []byte(tc.cart)))
			}

			_, err := NewSessionStore(kv).Load(context.Background())
			require.ErrorIs(t, err, domain.ErrInvalidSnapshot)
		})
	}
}

func TestSessionStoreUserRecords(t *testing.T) {
	store := NewSessionStore(filestore.NewStore(t.TempDir()))
	account := domain.Account{Name: "Ada", Email: "Ada@Example.com", Funds: 1000_00}

	_, found, err := store.LoadUser(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SaveUser(context.Background(), account))

	loaded, found, err := store.LoadUser(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, account, loaded)
	assert.Equal(t, "users/ada@example.com", UserKey(" Ada@Example.com "))
}
