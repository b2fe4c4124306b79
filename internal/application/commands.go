package application

import "github.com/bnema/primemall-cli/internal/domain"

type SignupCommand struct {
	Name     string
	Email    string
	Password string
}

type LoginCommand struct {
	Email    string
	Password string
}

type SetQuantityCommand struct {
	ProductID domain.ItemID
	Quantity  int
}
