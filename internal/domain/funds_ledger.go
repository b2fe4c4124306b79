package domain

import "sort"

// FundsLedger keeps a session account and its cart in lockstep. Reserved
// money is subtracted from the spendable balance at reservation time, so the
// cart total plus the current funds always equals the balance the account had
// before anything was reserved.
//
// FundsLedger is not safe for concurrent use.
type FundsLedger struct {
	account *Account
	lines   map[ItemID]CartLine
}

func NewFundsLedger() *FundsLedger {
	return &FundsLedger{lines: map[ItemID]CartLine{}}
}

// StartSession replaces any current session with the given account and an
// empty cart.
func (l *FundsLedger) StartSession(account Account) {
	acc := account
	l.account = &acc
	l.lines = map[ItemID]CartLine{}
}

// EndSession drops the account and the cart. Held funds are not refunded
// because the account itself is discarded.
func (l *FundsLedger) EndSession() {
	l.account = nil
	l.lines = map[ItemID]CartLine{}
}

func (l *FundsLedger) Authenticated() bool {
	return l.account != nil
}

// Account returns a copy of the session account.
func (l *FundsLedger) Account() (Account, bool) {
	if l.account == nil {
		return Account{}, false
	}

	return *l.account, true
}

// Reserve holds one unit of item against the account's spendable funds. The
// cart total already held is counted against the funds once more, so an item
// is accepted only when it fits in what remains after the current cart.
func (l *FundsLedger) Reserve(item Item) error {
	if l.account == nil {
		return ErrNotAuthenticated
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if item.Price > l.account.Funds-l.CartTotal() {
		return ErrInsufficientFunds
	}

	line, ok := l.lines[item.ID]
	if ok && line.Quantity >= MaxLineQuantity {
		return ErrInvalidQuantity
	}
	if !ok {
		line = CartLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Image:     item.Image,
			UnitPrice: item.Price,
		}
	}
	line.Quantity++

	l.lines[item.ID] = line
	l.account.Funds -= item.Price

	return nil
}

// Release removes the line and refunds everything held for it. Unknown items
// are ignored.
func (l *FundsLedger) Release(id ItemID) {
	line, ok := l.lines[id]
	if !ok {
		return
	}

	delete(l.lines, id)
	if l.account != nil {
		l.account.Funds += line.Subtotal()
	}
}

// SetQuantity sets the line quantity exactly, or releases the line when
// quantity <= 0. An increase the funds cannot cover is refused as a whole, as
// is any quantity above MaxLineQuantity.
func (l *FundsLedger) SetQuantity(id ItemID, quantity int) error {
	if l.account == nil {
		return ErrNotAuthenticated
	}

	line, ok := l.lines[id]
	if !ok {
		return nil
	}

	if quantity <= 0 {
		l.Release(id)
		return nil
	}
	if quantity > MaxLineQuantity {
		return ErrInvalidQuantity
	}

	// Compared by division so a large delta cannot wrap the cost.
	delta := quantity - line.Quantity
	if delta > 0 && line.UnitPrice > 0 && Cents(delta) > l.account.Funds/line.UnitPrice {
		return ErrInsufficientFunds
	}

	l.account.Funds -= Cents(delta) * line.UnitPrice
	line.Quantity = quantity
	l.lines[id] = line

	return nil
}

// Clear refunds the cart total and empties the cart.
func (l *FundsLedger) Clear() {
	if l.account != nil {
		l.account.Funds += l.CartTotal()
	}
	l.lines = map[ItemID]CartLine{}
}

// Checkout empties the cart without refunding, spending the held funds.
func (l *FundsLedger) Checkout() (Cents, error) {
	if l.account == nil {
		return 0, ErrNotAuthenticated
	}
	if len(l.lines) == 0 {
		return 0, ErrEmptyCart
	}

	spent := l.CartTotal()
	l.lines = map[ItemID]CartLine{}

	return spent, nil
}

func (l *FundsLedger) CartTotal() Cents {
	var total Cents
	for _, line := range l.lines {
		total += line.Subtotal()
	}

	return total
}

func (l *FundsLedger) CartCount() int {
	count := 0
	for _, line := range l.lines {
		count += line.Quantity
	}

	return count
}

// Lines returns the cart lines ordered by item id.
func (l *FundsLedger) Lines() []CartLine {
	lines := make([]CartLine, 0, len(l.lines))
	for _, line := range l.lines {
		lines = append(lines, line)
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ItemID < lines[j].ItemID
	})

	return lines
}

func (l *FundsLedger) Snapshot() Snapshot {
	snapshot := Snapshot{Cart: l.Lines()}
	if l.account != nil {
		acc := *l.account
		snapshot.Account = &acc
	}

	return snapshot
}

// Restore replaces the ledger state with snapshot. Invalid snapshots leave the
// ledger untouched.
func (l *FundsLedger) Restore(snapshot Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	lines := make(map[ItemID]CartLine, len(snapshot.Cart))
	for _, line := range snapshot.Cart {
		lines[line.ItemID] = line
	}

	l.account = nil
	if snapshot.Account != nil {
		acc := *snapshot.Account
		l.account = &acc
	}
	l.lines = lines

	return nil
}
