package toml

import (
	"fmt"

	"github.com/bnema/primemall-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Products []productSchema `toml:"products"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported catalog schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// productSchema keeps prices as decimal strings ("199.99") so the file stays
// readable and never goes through a float.
type productSchema struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Category    string `toml:"category,omitempty"`
	Description string `toml:"description,omitempty"`
	Image       string `toml:"image,omitempty"`
	Price       string `toml:"price"`
}

func toSchema(product domain.Product) productSchema {
	return productSchema{
		ID:          string(product.ID),
		Name:        product.Name,
		Category:    product.Category,
		Description: product.Description,
		Image:       product.Image,
		Price:       product.Price.Decimal(),
	}
}

func fromSchema(entry productSchema) (domain.Product, error) {
	price, err := domain.ParseCents(entry.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %q: %w", entry.ID, err)
	}

	product := domain.Product{
		ID:          domain.ItemID(entry.ID),
		Name:        entry.Name,
		Category:    entry.Category,
		Description: entry.Description,
		Image:       entry.Image,
		Price:       price,
	}
	if err := product.Item().Validate(); err != nil {
		return domain.Product{}, err
	}

	return product, nil
}
