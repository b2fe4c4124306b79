package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

type Account struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Funds Cents  `json:"funds_cents"`
}

// NewAccount returns an account holding the demo starting balance.
func NewAccount(name, email string) (Account, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if err := ValidateEmail(email); err != nil {
		return Account{}, err
	}
	if name == "" {
		return Account{}, fmt.Errorf("%w: name is required", ErrInvalidName)
	}

	return Account{Name: name, Email: email, Funds: InitialFunds}, nil
}

// DefaultAccountName derives a display name from the email local part.
func DefaultAccountName(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return local
}

func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidEmail)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	return nil
}
