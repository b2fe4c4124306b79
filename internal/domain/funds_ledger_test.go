package domain

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	headphones = Item{ID: "1", Name: "Premium Wireless Headphones", Price: 199_99}
	watch      = Item{ID: "2", Name: "Smart Watch Pro", Price: 349_99}
	lamp       = Item{ID: "5", Name: "Minimalist Desk Lamp", Price: 79_99}
)

func newLedger(t *testing.T, funds Cents) *FundsLedger {
	t.Helper()

	ledger := NewFundsLedger()
	ledger.StartSession(Account{Name: "ada", Email: "ada@example.com", Funds: funds})
	return ledger
}

func funds(t *testing.T, l *FundsLedger) Cents {
	t.Helper()

	account, ok := l.Account()
	require.True(t, ok)
	return account.Funds
}

func TestReserveRequiresSession(t *testing.T) {
	ledger := NewFundsLedger()

	err := ledger.Reserve(headphones)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, ledger.Lines())

	require.ErrorIs(t, ledger.SetQuantity(headphones.ID, 2), ErrNotAuthenticated)

	_, err = ledger.Checkout()
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestReserveDeductsFundsAndIncrementsLine(t *testing.T) {
	ledger := newLedger(t, InitialFunds)

	require.NoError(t, ledger.Reserve(headphones))
	require.NoError(t, ledger.Reserve(headphones))
	require.NoError(t, ledger.Reserve(lamp))

	assert.Equal(t, InitialFunds-2*199_99-79_99, funds(t, ledger))
	assert.Equal(t, Cents(2*199_99+79_99), ledger.CartTotal())
	assert.Equal(t, 3, ledger.CartCount())
	assert.Equal(t, []CartLine{
		{ItemID: "1", Name: headphones.Name, UnitPrice: 199_99, Quantity: 2},
		{ItemID: "5", Name: lamp.Name, UnitPrice: 79_99, Quantity: 1},
	}, ledger.Lines())
}

func TestReserveRejectsWhenFundsShort(t *testing.T) {
	ledger := newLedger(t, 300_00)

	require.NoError(t, ledger.Reserve(headphones))
	err := ledger.Reserve(headphones)

	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, Cents(300_00-199_99), funds(t, ledger))
	assert.Equal(t, 1, ledger.CartCount())
}

func TestReserveCountsHeldCartAgainstFunds(t *testing.T) {
	ledger := newLedger(t, InitialFunds)

	require.NoError(t, ledger.Reserve(Item{ID: "tv", Name: "TV", Price: 600_00}))
	err := ledger.Reserve(Item{ID: "soundbar", Name: "Soundbar", Price: 300_00})

	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, Cents(400_00), funds(t, ledger))
	assert.Equal(t, Cents(600_00), ledger.CartTotal())
	require.Len(t, ledger.Lines(), 1)
	assert.Equal(t, ItemID("tv"), ledger.Lines()[0].ItemID)
}

func TestReserveRefusesLineAboveMaxQuantity(t *testing.T) {
	ledger := NewFundsLedger()
	require.NoError(t, ledger.Restore(Snapshot{
		Account: &Account{Name: "ada", Email: "ada@example.com", Funds: InitialFunds},
		Cart:    []CartLine{{ItemID: "pin", Name: "Pin", UnitPrice: 0, Quantity: MaxLineQuantity}},
	}))

	err := ledger.Reserve(Item{ID: "pin", Name: "Pin", Price: 0})

	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, MaxLineQuantity, ledger.CartCount())
}

func TestReserveAllowsExactBalance(t *testing.T) {
	ledger := newLedger(t, 79_99)

	require.NoError(t, ledger.Reserve(lamp))
	assert.Equal(t, Cents(0), funds(t, ledger))
}

func TestReserveRejectsInvalidItem(t *testing.T) {
	ledger := newLedger(t, InitialFunds)

	assert.Error(t, ledger.Reserve(Item{ID: "", Price: 1}))
	assert.Error(t, ledger.Reserve(Item{ID: "x", Price: -1}))
	assert.Equal(t, InitialFunds, funds(t, ledger))
}

func TestReserveThenReleaseRoundTrip(t *testing.T) {
	ledger := newLedger(t, InitialFunds)

	require.NoError(t, ledger.Reserve(watch))
	ledger.Release(watch.ID)

	assert.Equal(t, InitialFunds, funds(t, ledger))
	assert.Empty(t, ledger.Lines())
}

func TestReleaseUnknownLineIsNoop(t *testing.T) {
	ledger := newLedger(t, InitialFunds)
	require.NoError(t, ledger.Reserve(lamp))

	ledger.Release("missing")

	assert.Equal(t, InitialFunds-79_99, funds(t, ledger))
	assert.Len(t, ledger.Lines(), 1)
}

func TestSetQuantity(t *testing.T) {
	t.Run("increase within funds", func(t *testing.T) {
		ledger := newLedger(t, InitialFunds)
		require.NoError(t, ledger.Reserve(lamp))

		require.NoError(t, ledger.SetQuantity(lamp.ID, 4))

		assert.Equal(t, InitialFunds-4*79_99, funds(t, ledger))
		assert.Equal(t, 4, ledger.CartCount())
	})

	t.Run("decrease refunds difference", func(t *testing.T) {
		ledger := newLedger(t, InitialFunds)
		require.NoError(t, ledger.Reserve(lamp))
		require.NoError(t, ledger.SetQuantity(lamp.ID, 3))

		require.NoError(t, ledger.SetQuantity(lamp.ID, 1))

		assert.Equal(t, InitialFunds-79_99, funds(t, ledger))
		assert.Equal(t, 1, ledger.CartCount())
	})

	t.Run("increase beyond funds is refused whole", func(t *testing.T) {
		ledger := newLedger(t, 500_00)
		require.NoError(t, ledger.Reserve(watch))

		err := ledger.SetQuantity(watch.ID, 2)

		require.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Equal(t, Cents(500_00-349_99), funds(t, ledger))
		assert.Equal(t, 1, ledger.Lines()[0].Quantity)
	})

	t.Run("zero releases line", func(t *testing.T) {
		ledger := newLedger(t, InitialFunds)
		require.NoError(t, ledger.Reserve(lamp))
		require.NoError(t, ledger.SetQuantity(lamp.ID, 2))

		require.NoError(t, ledger.SetQuantity(lamp.ID, 0))

		assert.Equal(t, InitialFunds, funds(t, ledger))
		assert.Empty(t, ledger.Lines())
	})

	t.Run("negative releases line", func(t *testing.T) {
		ledger := newLedger(t, InitialFunds)
		require.NoError(t, ledger.Reserve(lamp))

		require.NoError(t, ledger.SetQuantity(lamp.ID, -3))

		assert.Equal(t, InitialFunds, funds(t, ledger))
		assert.Empty(t, ledger.Lines())
	})

	t.Run("huge quantity cannot wrap the cost", func(t *testing.T) {
		tests := []struct {
			name     string
			price    Cents
			quantity int
		}{
			{name: "odd price", price: 3, quantity: 1<<62 + 1},
			{name: "cost wraps to zero", price: 4, quantity: math.MaxInt64/2 + 2},
			{name: "just above the cap", price: 1, quantity: MaxLineQuantity + 1},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				ledger := newLedger(t, InitialFunds)
				require.NoError(t, ledger.Reserve(Item{ID: "p", Name: "Pen", Price: tc.price}))
				before := ledger.Snapshot()

				err := ledger.SetQuantity("p", tc.quantity)

				require.ErrorIs(t, err, ErrInvalidQuantity)
				assert.Equal(t, before, ledger.Snapshot())
				assert.Equal(t, InitialFunds, funds(t, ledger)+ledger.CartTotal())
			})
		}
	})

	t.Run("increase checked without multiplying", func(t *testing.T) {
		ledger := newLedger(t, 100)
		require.NoError(t, ledger.Reserve(Item{ID: "p", Name: "Pen", Price: 3}))

		err := ledger.SetQuantity("p", 34)
		require.ErrorIs(t, err, ErrInsufficientFunds)

		require.NoError(t, ledger.SetQuantity("p", 33))
		assert.Equal(t, Cents(1), funds(t, ledger))
		assert.Equal(t, Cents(99), ledger.CartTotal())
	})

	t.Run("unknown line is ignored", func(t *testing.T) {
		ledger := newLedger(t, InitialFunds)

		require.NoError(t, ledger.SetQuantity("missing", 3))
		assert.Equal(t, InitialFunds, funds(t, ledger))
	})
}

func TestClearRefundsTotalAndIsIdempotent(t *testing.T) {
	ledger := newLedger(t, InitialFunds)
	require.NoError(t, ledger.Reserve(headphones))
	require.NoError(t, ledger.Reserve(lamp))
	before := funds(t, ledger)
	total := ledger.CartTotal()

	ledger.Clear()
	assert.Equal(t, before+total, funds(t, ledger))
	assert.Empty(t, ledger.Lines())

	ledger.Clear()
	assert.Equal(t, before+total, funds(t, ledger))
}

func TestCheckoutSpendsHeldFunds(t *testing.T) {
	ledger := newLedger(t, InitialFunds)
	require.NoError(t, ledger.Reserve(watch))

	spent, err := ledger.Checkout()
	require.NoError(t, err)

	assert.Equal(t, Cents(349_99), spent)
	assert.Equal(t, InitialFunds-349_99, funds(t, ledger))
	assert.Empty(t, ledger.Lines())

	_, err = ledger.Checkout()
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestEndSessionDropsAccountAndCart(t *testing.T) {
	ledger := newLedger(t, InitialFunds)
	require.NoError(t, ledger.Reserve(watch))

	ledger.EndSession()

	assert.False(t, ledger.Authenticated())
	assert.Empty(t, ledger.Lines())
	assert.Equal(t, Cents(0), ledger.CartTotal())
	_, ok := ledger.Account()
	assert.False(t, ok)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	ledger := newLedger(t, InitialFunds)
	require.NoError(t, ledger.Reserve(headphones))
	require.NoError(t, ledger.Reserve(lamp))
	snapshot := ledger.Snapshot()

	restored := NewFundsLedger()
	require.NoError(t, restored.Restore(snapshot))

	assert.Equal(t, ledger.Snapshot(), restored.Snapshot())

	// mutating the copy must not leak back into the snapshot
	require.NoError(t, restored.Reserve(lamp))
	assert.Equal(t, InitialFunds-199_99-79_99, snapshot.Account.Funds)
}

func TestRestoreRejectsInvalidSnapshot(t *testing.T) {
	ledger := newLedger(t, InitialFunds)
	require.NoError(t, ledger.Reserve(lamp))
	before := ledger.Snapshot()

	tests := []struct {
		name     string
		snapshot Snapshot
	}{
		{name: "cart without account", snapshot: Snapshot{Cart: []CartLine{{ItemID: "1", UnitPrice: 1, Quantity: 1}}}},
		{name: "negative funds", snapshot: Snapshot{Account: &Account{Funds: -1}}},
		{name: "zero quantity", snapshot: Snapshot{Account: &Account{}, Cart: []CartLine{{ItemID: "1", Quantity: 0}}}},
		{name: "negative price", snapshot: Snapshot{Account: &Account{}, Cart: []CartLine{{ItemID: "1", UnitPrice: -1, Quantity: 1}}}},
		{name: "duplicate line", snapshot: Snapshot{Account: &Account{}, Cart: []CartLine{{ItemID: "1", Quantity: 1}, {ItemID: "1", Quantity: 1}}}},
		{name: "missing id", snapshot: Snapshot{Account: &Account{}, Cart: []CartLine{{Quantity: 1}}}},
		{name: "quantity above max", snapshot: Snapshot{Account: &Account{}, Cart: []CartLine{{ItemID: "1", UnitPrice: 1, Quantity: MaxLineQuantity + 1}}}},
		{name: "total overflows", snapshot: Snapshot{Account: &Account{Funds: math.MaxInt64 - 10}, Cart: []CartLine{{ItemID: "1", UnitPrice: 11, Quantity: 1}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ledger.Restore(tc.snapshot)
			require.ErrorIs(t, err, ErrInvalidSnapshot)
			assert.Equal(t, before, ledger.Snapshot())
		})
	}
}

func TestFundsInvariantsHoldForRandomSequences(t *testing.T) {
	items := []Item{headphones, watch, lamp, {ID: "8", Name: "Bluetooth Speaker", Price: 119_99}}
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		start := Cents(rng.Intn(1500_00))
		ledger := newLedger(t, start)

		for step := 0; step < 200; step++ {
			item := items[rng.Intn(len(items))]
			switch rng.Intn(4) {
			case 0, 1:
				err := ledger.Reserve(item)
				if err != nil {
					require.ErrorIs(t, err, ErrInsufficientFunds)
				}
			case 2:
				ledger.Release(item.ID)
			case 3:
				err := ledger.SetQuantity(item.ID, rng.Intn(6)-1)
				if err != nil {
					require.ErrorIs(t, err, ErrInsufficientFunds)
				}
			}

			current := funds(t, ledger)
			require.GreaterOrEqual(t, int64(current), int64(0))
			require.Equal(t, start-current, ledger.CartTotal())
		}

		ledger.Clear()
		require.Equal(t, start, funds(t, ledger))
	}
}
