package application

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
	ordermem "github.com/wyfcoding/ecommerce/internal/order/infrastructure/persistence/memory"
)

type recordingPublisher struct {
	topics []string
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	p.topics = append(p.topics, topic)
	return nil
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleCommand(userID string) CreateOrderCommand {
	return CreateOrderCommand{
		UserID: userID,
		Items: []OrderItemInput{
			{ProductID: "1", Name: "Wireless Earbuds", Price: money("149.99"), Quantity: 2},
			{ProductID: "8", Name: "Bestseller Novel", Price: money("24.99"), Quantity: 1},
		},
		Subtotal:       money("324.97"),
		ShippingFee:    money("0"),
		Tax:            money("25.9976"),
		Total:          money("350.9676"),
		ShippingMethod: "standard",
		Recipient:      "Jane Doe",
		Address:        "1 Main St",
		City:           "Springfield",
		State:          "IL",
		ZipCode:        "62701",
		Country:        "United States",
	}
}

func TestCreateOrderAssignsNumberAndStatus(t *testing.T) {
	publisher := &recordingPublisher{}
	service := NewOrderService(ordermem.NewOrderRepository(), publisher)
	ctx := context.Background()

	order, err := service.Create(ctx, sampleCommand("user-1"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 3, order.ItemCount())
	assert.Equal(t, []string{domain.TopicOrderCreated}, publisher.topics)

	stored, err := service.Get(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(money("350.9676")))
	assert.Len(t, stored.Items, 2)
}

func TestOrderNumbersAreUnique(t *testing.T) {
	service := NewOrderService(ordermem.NewOrderRepository(), &recordingPublisher{})
	ctx := context.Background()

	first, err := service.Create(ctx, sampleCommand("user-1"))
	require.NoError(t, err)
	second, err := service.Create(ctx, sampleCommand("user-1"))
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
}

func TestCreateOrderStampsCreatedAt(t *testing.T) {
	service := NewOrderService(ordermem.NewOrderRepository(), &recordingPublisher{})
	ctx := context.Background()

	order, err := service.Create(ctx, sampleCommand("user-1"))
	require.NoError(t, err)

	stored, err := service.Get(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.False(t, stored.UpdatedAt.IsZero())
}

func TestListReturnsNewestFirst(t *testing.T) {
	service := NewOrderService(ordermem.NewOrderRepository(), &recordingPublisher{})
	ctx := context.Background()

	var numbers []string
	for i := 0; i < 5; i++ {
		order, err := service.Create(ctx, sampleCommand("user-1"))
		require.NoError(t, err)
		numbers = append(numbers, order.OrderNumber)
	}

	orders, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 5)
	// 最后创建的订单排在最前
	for i, order := range orders {
		assert.Equal(t, numbers[len(numbers)-1-i], order.OrderNumber)
	}

	byUser, err := service.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, byUser, 5)
	assert.Equal(t, numbers[len(numbers)-1], byUser[0].OrderNumber)
}

func TestListByUserFiltersOtherUsers(t *testing.T) {
	service := NewOrderService(ordermem.NewOrderRepository(), &recordingPublisher{})
	ctx := context.Background()

	_, err := service.Create(ctx, sampleCommand("user-1"))
	require.NoError(t, err)
	_, err = service.Create(ctx, sampleCommand("user-2"))
	require.NoError(t, err)

	orders, err := service.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "user-1", orders[0].UserID)
}

func TestUpdateStatus(t *testing.T) {
	publisher := &recordingPublisher{}
	service := NewOrderService(ordermem.NewOrderRepository(), publisher)
	ctx := context.Background()

	order, err := service.Create(ctx, sampleCommand("user-1"))
	require.NoError(t, err)

	require.NoError(t, service.UpdateStatus(ctx, order.OrderNumber, domain.OrderStatusShipped))

	stored, err := service.Get(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, stored.Status)
	assert.Contains(t, publisher.topics, domain.TopicOrderStatusChanged)
}

func TestUpdateStatusRejectsUnknownValues(t *testing.T) {
	service := NewOrderService(ordermem.NewOrderRepository(), &recordingPublisher{})

	err := service.UpdateStatus(context.Background(), "ORD-1", domain.OrderStatus("lost"))

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	service := NewOrderService(ordermem.NewOrderRepository(), &recordingPublisher{})

	err := service.UpdateStatus(context.Background(), "ORD-missing", domain.OrderStatusShipped)

	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetUnknownOrder(t *testing.T) {
	service := NewOrderService(ordermem.NewOrderRepository(), &recordingPublisher{})

	_, err := service.Get(context.Background(), "ORD-missing")

	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
