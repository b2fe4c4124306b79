package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, catalogPath string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set(CatalogPathKey, catalogPath)
	repo, err := NewRepository(config)
	require.NoError(t, err)

	return repo
}

func TestRepositoryServesDemoCatalogWhenFileMissing(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "catalog.toml"))

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DemoCatalog, products)

	got, err := repo.GetByID(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "Running Shoes Elite", got.Name)

	_, err = repo.GetByID(context.Background(), "42")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRepositoryReplaceRoundTrip(t *testing.T) {
	t.Parallel()

	catalogPath := filepath.Join(t.TempDir(), "catalog.toml")
	repo := newTestRepository(t, catalogPath)
	products := []domain.Product{
		{ID: "tea", Name: "Sencha", Category: "Grocery", Price: 12_50},
		{ID: "mug", Name: "Stoneware Mug", Price: 9_00, Image: "https://example.com/mug.png"},
	}

	require.NoError(t, repo.Replace(context.Background(), products))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, got)

	data, err := os.ReadFile(catalogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "12.50")
}

func TestRepositoryReadsHandWrittenCatalog(t *testing.T) {
	t.Parallel()

	catalogPath := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[products]]",
		`id = "lamp"`,
		`name = "Desk Lamp"`,
		`price = "79.99"`,
		"",
	}, "\n")), 0o600))

	repo := newTestRepository(t, catalogPath)
	got, err := repo.GetByID(context.Background(), "lamp")
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(79_99), got.Price)
}

func TestRepositoryRejectsBadCatalogFiles(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed", content: "products = [", wantErr: "decode catalog file"},
		{name: "future version", content: "version = 999\nproducts = []\n", wantErr: "unsupported catalog schema version"},
		{name: "bad price", content: "[[products]]\nid = \"x\"\nname = \"X\"\nprice = \"1.999\"\n", wantErr: "two decimal places"},
		{name: "negative price", content: "[[products]]\nid = \"x\"\nname = \"X\"\nprice = \"-1\"\n", wantErr: "negative price"},
		{name: "duplicate id", content: "[[products]]\nid = \"x\"\nname = \"X\"\nprice = \"1\"\n[[products]]\nid = \"x\"\nname = \"Y\"\nprice = \"2\"\n", wantErr: "duplicate product id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			catalogPath := filepath.Join(t.TempDir(), "catalog.toml")
			require.NoError(t, os.WriteFile(catalogPath, []byte(tc.content), 0o600))

			_, err := newTestRepository(t, catalogPath).List(context.Background())
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestRepositoryDefaultsToHomeDirectory(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)
	require.NoError(t, repo.Replace(context.Background(), domain.DemoCatalog[:1]))

	info, err := os.Stat(filepath.Join(homeDir, ".primemall", "catalog.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(catalogFileMode), info.Mode().Perm())
}

func TestRepositoryCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "catalog.toml"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Replace(ctx, domain.DemoCatalog)
	assert.True(t, errors.Is(err, context.Canceled))
}
