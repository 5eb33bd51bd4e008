package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinelabs/vitrine/internal/domain"
)

func TestNewStoreRejectsDuplicateIDs(t *testing.T) {
	_, err := NewStore([]domain.Product{
		{ID: "a", Name: "First", Price: dec("10")},
		{ID: "a", Name: "Second", Price: dec("20")},
	})
	require.Error(t, err)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestNewStoreRejectsEmptyID(t *testing.T) {
	_, err := NewStore([]domain.Product{{Name: "No ID", Price: dec("10")}})
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestStoreAccessors(t *testing.T) {
	store, err := NewStore(testCatalog())
	require.NoError(t, err)

	t.Run("ProductByID", func(t *testing.T) {
		p, ok := store.ProductByID("b")
		require.True(t, ok)
		assert.Equal(t, "Classic Jacket", p.Name)

		_, ok = store.ProductByID("missing")
		assert.False(t, ok)
	})

	t.Run("Brands are distinct and sorted", func(t *testing.T) {
		assert.Equal(t, []string{"Adidas", "Nike"}, store.Brands())
	})

	t.Run("Categories are distinct and sorted", func(t *testing.T) {
		assert.Equal(t, []string{"accessories", "jackets", "shoes"}, store.Categories())
	})

	t.Run("PriceRange spans the catalog", func(t *testing.T) {
		r := store.PriceRange()
		assert.True(t, r.Min.Equal(dec("50")))
		assert.True(t, r.Max.Equal(dec("250")))
	})
}

func TestEmptyStorePriceRange(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)

	r := store.PriceRange()
	assert.True(t, r.Min.IsZero())
	assert.True(t, r.Max.IsZero())
}

func TestLoadStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")

	data := `[
		{"id": "p1", "name": "Tênis Urbano", "description": "Tênis casual", "price": "199.90",
		 "old_price": "249.90", "brand": "Olympikus", "category": "shoes",
		 "rating": 4.2, "sold": 30, "created_at": "2024-05-01T00:00:00Z",
		 "image": "https://cdn.example.com/p1.jpg", "sizes": ["38", "39", "40"]},
		{"id": "p2", "name": "Meia Kit", "description": "Kit com 3 pares", "price": "29.90",
		 "rating": 7.5, "sold": -4}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	store, err := LoadStore(path)
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	p1, ok := store.ProductByID("p1")
	require.True(t, ok)
	assert.True(t, p1.Price.Equal(dec("199.90")))
	require.NotNil(t, p1.OldPrice)
	assert.True(t, p1.OldPrice.Equal(dec("249.90")))
	assert.Equal(t, []string{"https://cdn.example.com/p1.jpg"}, p1.Gallery())
	assert.True(t, p1.HasVariants())

	// Out-of-range optional fields are normalized, not rejected.
	p2, ok := store.ProductByID("p2")
	require.True(t, ok)
	assert.Equal(t, 5.0, p2.Rating)
	assert.Equal(t, 0, p2.Sold)
	assert.False(t, p2.HasVariants())
}

func TestLoadStoreMissingFile(t *testing.T) {
	_, err := LoadStore(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
}

func TestLoadStoreToleratesInvalidCreatedAt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	data := `[{"id": "p1", "name": "Relógio", "price": "99.90", "created_at": "sometime in 2024"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	store, err := LoadStore(path)
	require.NoError(t, err)

	p, ok := store.ProductByID("p1")
	require.True(t, ok)
	assert.True(t, p.CreatedAt.IsZero(), "unparsable timestamps sort as the oldest possible")
}

func TestLoadStoreDropsInvalidOldPrice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	data := `[{"id": "p1", "name": "Boné", "price": "49.90", "old_price": "9.90"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	store, err := LoadStore(path)
	require.NoError(t, err)

	p, ok := store.ProductByID("p1")
	require.True(t, ok)
	assert.Nil(t, p.OldPrice)
}
