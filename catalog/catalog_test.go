package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/royalkeys/royalkeys/catalog"
)

func TestDefaultCatalogLookups(t *testing.T) {
	cat := catalog.Default()
	require.NotZero(t, cat.Len())

	p, err := cat.ByID("sw-win11")
	require.NoError(t, err)
	assert.Equal(t, "Windows 11 Professional Retail Key", p.Title)
	assert.Equal(t, catalog.CategorySoftware, p.Category)

	_, err = cat.ByID("no-such-product")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestByCategoryPreservesOrder(t *testing.T) {
	cat := catalog.Default()
	all := cat.Products()

	software := cat.ByCategory(catalog.CategorySoftware)
	require.NotEmpty(t, software)

	// Every returned product has the category, and the subsequence keeps
	// catalog order.
	idx := 0
	for _, p := range all {
		if p.Category != catalog.CategorySoftware {
			continue
		}
		require.Less(t, idx, len(software))
		assert.Equal(t, p.ID, software[idx].ID)
		idx++
	}
	assert.Equal(t, idx, len(software))
}

func TestEveryCategoryIsSeeded(t *testing.T) {
	cat := catalog.Default()
	for _, c := range catalog.Categories() {
		assert.NotEmpty(t, cat.ByCategory(c), "category %s has no products", c)
	}
}

func TestProductsReturnsACopy(t *testing.T) {
	cat := catalog.Default()
	products := cat.Products()
	products[0].Title = "mutated"

	fresh := cat.Products()
	assert.NotEqual(t, "mutated", fresh[0].Title)
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, catalog.CategoryGames.Valid())
	assert.False(t, catalog.Category("Not A Category").Valid())
	assert.False(t, catalog.Category("").Valid())
}
