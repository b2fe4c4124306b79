package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	CatalogPathKey    = "catalog.path"
	catalogFileMode   = 0o644
	catalogDirMode    = 0o700
	catalogConfigDir  = ".primemall"
	catalogConfigFile = "catalog.toml"
	tempFilePattern   = ".catalog-*.toml.tmp"
)

// Repository serves the product catalog from a TOML file. When the file does
// not exist the built-in demo catalog is served instead.
type Repository struct {
	catalogPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.CatalogRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	catalogPath := cfg.GetString(CatalogPathKey)
	if catalogPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		catalogPath = filepath.Join(homeDir, catalogConfigDir, catalogConfigFile)
	}

	catalogPath, err := normalizeCatalogPath(catalogPath)
	if err != nil {
		return nil, err
	}

	return &Repository{catalogPath: catalogPath, mu: lockForPath(catalogPath)}, nil
}

func (r *Repository) Path() string {
	return r.catalogPath
}

func (r *Repository) GetByID(ctx context.Context, id domain.ItemID) (domain.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	for _, product := range products {
		if product.ID == id {
			return product, nil
		}
	}

	return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrProductNotFound, id)
}

func (r *Repository) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, found, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	if !found {
		return append([]domain.Product(nil), domain.DemoCatalog...), nil
	}

	products := make([]domain.Product, 0, len(file.Products))
	seen := make(map[domain.ItemID]struct{}, len(file.Products))
	for _, entry := range file.Products {
		product, err := fromSchema(entry)
		if err != nil {
			return nil, fmt.Errorf("decode catalog file: %w", err)
		}
		if _, dup := seen[product.ID]; dup {
			return nil, fmt.Errorf("decode catalog file: duplicate product id %q", product.ID)
		}
		seen[product.ID] = struct{}{}
		products = append(products, product)
	}

	return products, nil
}

// Replace writes products as the new catalog file.
func (r *Repository) Replace(ctx context.Context, products []domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file := fileSchema{Products: make([]productSchema, 0, len(products))}
	for _, product := range products {
		if err := product.Item().Validate(); err != nil {
			return err
		}
		file.Products = append(file.Products, toSchema(product))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, bool, error) {
	data, err := os.ReadFile(r.catalogPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, false, nil
		}
		return fileSchema{}, false, fmt.Errorf("read catalog file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, false, fmt.Errorf("decode catalog file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, false, err
	}
	file.applyDefaults()

	return file, true, nil
}

func normalizeCatalogPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve catalog path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.catalogPath), catalogDirMode); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode catalog file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.catalogPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp catalog file: %w", err)
	}
	if err := tempFile.Chmod(catalogFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp catalog file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp catalog file: %w", err)
	}
	if err := os.Rename(tempName, r.catalogPath); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}

	cleanup = false
	return nil
}
