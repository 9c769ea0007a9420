package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
	catalogmem "github.com/wyfcoding/ecommerce/internal/catalog/infrastructure/persistence/memory"
)

func newService() *CatalogQueryService {
	return NewCatalogQueryService(catalogmem.NewProductRepository())
}

func TestListProductsReturnsSeedCatalog(t *testing.T) {
	products, err := newService().ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 8)
}

func TestSearchProductsAppliesCriteria(t *testing.T) {
	products, err := newService().SearchProducts(context.Background(), domain.FilterCriteria{
		Category: domain.CategoryElectronics,
		Sort:     domain.SortByPriceLow,
	})
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "Wireless Earbuds", products[0].Name)
	assert.Equal(t, "Smartwatch Pro", products[1].Name)
}

func TestGetProduct(t *testing.T) {
	product, err := newService().GetProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Elegant Gold Bracelet", product.Name)

	_, err = newService().GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListReviews(t *testing.T) {
	reviews, err := newService().ListReviews(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, reviews, 3)

	_, err = newService().ListReviews(context.Background(), "missing")
	assert.Error(t, err)
}
