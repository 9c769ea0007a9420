// Package application 实现卖家后台的应用服务层
// 后台是订单与目录上下文之上的只读聚合视图
package application

import (
	"context"

	"github.com/shopspring/decimal"
	catalog "github.com/wyfcoding/ecommerce/internal/catalog/domain"
	order "github.com/wyfcoding/ecommerce/internal/order/domain"
)

// Overview 经营总览
type Overview struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalOrders    int             `json:"total_orders"`
	TotalProducts  int             `json:"total_products"`
	TotalCustomers int             `json:"total_customers"`
}

// InventoryItem 库存视图条目
type InventoryItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Sold      int             `json:"sold"`
}

// DashboardService 卖家后台应用服务
type DashboardService struct {
	orders   order.OrderRepository
	products catalog.ProductRepository
}

// NewDashboardService 创建卖家后台应用服务实例
func NewDashboardService(orders order.OrderRepository, products catalog.ProductRepository) *DashboardService {
	return &DashboardService{orders: orders, products: products}
}

// GetOverview 经营总览：总营收、订单数、在售商品数、去重客户数
func (s *DashboardService) GetOverview(ctx context.Context) (*Overview, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	customers := make(map[string]struct{})
	for _, o := range orders {
		revenue = revenue.Add(o.Total)
		customers[o.UserID] = struct{}{}
	}

	return &Overview{
		TotalRevenue:   revenue,
		TotalOrders:    len(orders),
		TotalProducts:  len(products),
		TotalCustomers: len(customers),
	}, nil
}

// ListOrders 全量订单，按创建时间倒序
func (s *DashboardService) ListOrders(ctx context.Context) ([]order.Order, error) {
	return s.orders.List(ctx)
}

// ListInventory 库存视图
func (s *DashboardService) ListInventory(ctx context.Context) ([]InventoryItem, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]InventoryItem, 0, len(products))
	for _, p := range products {
		items = append(items, InventoryItem{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  string(p.Category),
			Price:     p.Price,
			Stock:     p.Stock,
			Sold:      p.Sold,
		})
	}
	return items, nil
}
