package ports

import (
	"context"

	"github.com/bnema/primemall-cli/internal/domain"
)

type CatalogRepository interface {
	GetByID(ctx context.Context, id domain.ItemID) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}
