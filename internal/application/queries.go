package application

import "github.com/bnema/primemall-cli/internal/domain"

// CartView is a read-only copy of the session state.
type CartView struct {
	Account *domain.Account   `json:"account,omitempty"`
	Lines   []domain.CartLine `json:"lines"`
	Total   domain.Cents      `json:"total_cents"`
	Count   int               `json:"count"`
}

func (v CartView) Authenticated() bool {
	return v.Account != nil
}

type CheckoutResult struct {
	Spent     domain.Cents `json:"spent_cents"`
	Remaining domain.Cents `json:"remaining_cents"`
}
