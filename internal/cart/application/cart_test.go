package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/ecommerce/internal/cart/domain"
	cartmem "github.com/wyfcoding/ecommerce/internal/cart/infrastructure/persistence/memory"
	catalog "github.com/wyfcoding/ecommerce/internal/catalog/domain"
	catalogmem "github.com/wyfcoding/ecommerce/internal/catalog/infrastructure/persistence/memory"
)

type recordingPublisher struct {
	topics []string
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	p.topics = append(p.topics, topic)
	return nil
}

func newCartService(t *testing.T) (*CartService, *recordingPublisher) {
	t.Helper()
	publisher := &recordingPublisher{}
	service := NewCartService(
		cartmem.NewCartRepository(),
		catalogmem.NewProductRepository(),
		publisher,
	)
	return service, publisher
}

func TestAddItemTwiceMergesEntry(t *testing.T) {
	service, publisher := newCartService(t)
	ctx := context.Background()

	require.NoError(t, service.AddItem(ctx, "user-1", "1"))
	require.NoError(t, service.AddItem(ctx, "user-1", "1"))

	cart, err := service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, cart.ItemCount())
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "Elegant Gold Bracelet", cart.Items[0].Name)

	assert.Equal(t, []string{domain.TopicCartItemAdded, domain.TopicCartItemAdded}, publisher.topics)
}

func TestAddItemUnknownProduct(t *testing.T) {
	service, publisher := newCartService(t)

	err := service.AddItem(context.Background(), "user-1", "no-such-product")

	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Empty(t, publisher.topics)
}

func TestUpdateQuantityZeroPublishesRemoval(t *testing.T) {
	service, publisher := newCartService(t)
	ctx := context.Background()

	require.NoError(t, service.AddItem(ctx, "user-1", "1"))
	require.NoError(t, service.UpdateQuantity(ctx, "user-1", "1", 0))

	cart, err := service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	assert.Equal(t, []string{domain.TopicCartItemAdded, domain.TopicCartItemRemoved}, publisher.topics)
}

func TestUpdateQuantityPublishesUpdate(t *testing.T) {
	service, publisher := newCartService(t)
	ctx := context.Background()

	require.NoError(t, service.AddItem(ctx, "user-1", "2"))
	require.NoError(t, service.UpdateQuantity(ctx, "user-1", "2", 5))

	cart, err := service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	assert.Contains(t, publisher.topics, domain.TopicCartQuantityUpdated)
}

func TestClearCart(t *testing.T) {
	service, publisher := newCartService(t)
	ctx := context.Background()

	require.NoError(t, service.AddItem(ctx, "user-1", "1"))
	require.NoError(t, service.AddItem(ctx, "user-1", "2"))
	require.NoError(t, service.ClearCart(ctx, "user-1"))

	cart, err := service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	assert.Contains(t, publisher.topics, domain.TopicCartCleared)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	service, _ := newCartService(t)
	ctx := context.Background()

	require.NoError(t, service.AddItem(ctx, "user-1", "1"))

	other, err := service.GetCart(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestGetQuoteValidatesShippingMethod(t *testing.T) {
	service, _ := newCartService(t)

	_, err := service.GetQuote(context.Background(), "user-1", domain.ShippingMethod("overnight"))

	assert.ErrorIs(t, err, domain.ErrInvalidShippingMethod)
}

func TestGetQuoteForSeededProduct(t *testing.T) {
	service, _ := newCartService(t)
	ctx := context.Background()

	// 89.99 >= 50，免运费；税 7.1992
	require.NoError(t, service.AddItem(ctx, "user-1", "1"))

	quote, err := service.GetQuote(ctx, "user-1", domain.ShippingStandard)
	require.NoError(t, err)

	assert.Equal(t, "89.99", quote.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", quote.Shipping.StringFixed(2))
	assert.Equal(t, "97.19", quote.Total.StringFixed(2))
}
