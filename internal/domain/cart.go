package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type ItemID string

// Item is anything the funds ledger can hold money against.
type Item struct {
	ID    ItemID
	Name  string
	Image string
	Price Cents
}

func (i Item) Validate() error {
	if strings.TrimSpace(string(i.ID)) == "" {
		return errors.New("item id is required")
	}
	if i.Price < 0 {
		return fmt.Errorf("item %s has negative price %s", i.ID, i.Price)
	}

	return nil
}

// MaxLineQuantity bounds the units a single cart line may hold.
const MaxLineQuantity = 10_000

type CartLine struct {
	ItemID    ItemID `json:"item_id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	UnitPrice Cents  `json:"unit_price_cents"`
	Quantity  int    `json:"quantity"`
}

func (l CartLine) Subtotal() Cents {
	return l.UnitPrice * Cents(l.Quantity)
}

// Snapshot is the persisted form of a session: the account and its cart.
type Snapshot struct {
	Account *Account
	Cart    []CartLine
}

func (s Snapshot) Validate() error {
	if s.Account == nil {
		if len(s.Cart) > 0 {
			return fmt.Errorf("%w: cart without account", ErrInvalidSnapshot)
		}
		return nil
	}

	if s.Account.Funds < 0 {
		return fmt.Errorf("%w: negative funds %s", ErrInvalidSnapshot, s.Account.Funds)
	}

	held := s.Account.Funds
	seen := make(map[ItemID]struct{}, len(s.Cart))
	for _, line := range s.Cart {
		if strings.TrimSpace(string(line.ItemID)) == "" {
			return fmt.Errorf("%w: cart line without item id", ErrInvalidSnapshot)
		}
		if _, ok := seen[line.ItemID]; ok {
			return fmt.Errorf("%w: duplicate cart line %s", ErrInvalidSnapshot, line.ItemID)
		}
		seen[line.ItemID] = struct{}{}
		if line.Quantity < 1 {
			return fmt.Errorf("%w: line %s has quantity %d", ErrInvalidSnapshot, line.ItemID, line.Quantity)
		}
		if line.Quantity > MaxLineQuantity {
			return fmt.Errorf("%w: line %s has quantity %d", ErrInvalidSnapshot, line.ItemID, line.Quantity)
		}
		if line.UnitPrice < 0 {
			return fmt.Errorf("%w: line %s has negative price", ErrInvalidSnapshot, line.ItemID)
		}
		if line.UnitPrice > 0 && Cents(line.Quantity) > (math.MaxInt64-held)/line.UnitPrice {
			return fmt.Errorf("%w: line %s overflows the balance", ErrInvalidSnapshot, line.ItemID)
		}
		held += line.Subtotal()
	}

	return nil
}
