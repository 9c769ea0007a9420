package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogmem "github.com/wyfcoding/ecommerce/internal/catalog/infrastructure/persistence/memory"
	order "github.com/wyfcoding/ecommerce/internal/order/domain"
	ordermem "github.com/wyfcoding/ecommerce/internal/order/infrastructure/persistence/memory"
)

func seedOrder(t *testing.T, repo order.OrderRepository, number, userID, total string) {
	t.Helper()
	err := repo.Create(context.Background(), &order.Order{
		OrderNumber: number,
		UserID:      userID,
		Status:      order.OrderStatusPending,
		Total:       decimal.RequireFromString(total),
		Items: []order.OrderItem{
			{ProductID: "1", Name: "Wireless Earbuds", Price: decimal.RequireFromString(total), Quantity: 1},
		},
	})
	require.NoError(t, err)
}

func TestOverviewAggregatesOrders(t *testing.T) {
	orders := ordermem.NewOrderRepository()
	service := NewDashboardService(orders, catalogmem.NewProductRepository())

	seedOrder(t, orders, "ORD-1", "user-1", "100.50")
	seedOrder(t, orders, "ORD-2", "user-1", "49.50")
	seedOrder(t, orders, "ORD-3", "user-2", "200.00")

	overview, err := service.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "350.00", overview.TotalRevenue.StringFixed(2))
	assert.Equal(t, 3, overview.TotalOrders)
	// 客户数按用户去重
	assert.Equal(t, 2, overview.TotalCustomers)
	// 种子目录共 8 个商品
	assert.Equal(t, 8, overview.TotalProducts)
}

func TestOverviewWithNoOrders(t *testing.T) {
	service := NewDashboardService(ordermem.NewOrderRepository(), catalogmem.NewProductRepository())

	overview, err := service.GetOverview(context.Background())
	require.NoError(t, err)

	assert.True(t, overview.TotalRevenue.IsZero())
	assert.Equal(t, 0, overview.TotalOrders)
	assert.Equal(t, 0, overview.TotalCustomers)
}

func TestListInventoryExposesStockAndSold(t *testing.T) {
	service := NewDashboardService(ordermem.NewOrderRepository(), catalogmem.NewProductRepository())

	items, err := service.ListInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 8)

	byID := make(map[string]InventoryItem, len(items))
	for _, item := range items {
		byID[item.ProductID] = item
	}
	earbuds := byID["3"]
	assert.Equal(t, "Wireless Earbuds", earbuds.Name)
	assert.Equal(t, 32, earbuds.Stock)
	assert.Equal(t, 41, earbuds.Sold)
}
