// Package memory 提供订单的内存仓储实现，未配置数据库时使用
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wyfcoding/ecommerce/internal/order/domain"
)

type orderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	nextID uint64
}

// NewOrderRepository 创建内存订单仓储
func NewOrderRepository() domain.OrderRepository {
	return &orderRepository{orders: make(map[string]*domain.Order)}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order.ID = r.nextID
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.OrderNumber] = cloneOrder(order)
	return nil
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderNumber]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, *cloneOrder(order))
		}
	}
	sortByCreatedAtDesc(orders)
	return orders, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, *cloneOrder(order))
	}
	sortByCreatedAtDesc(orders)
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderNumber]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return nil
}

// 创建时间相同（同一毫秒内入库）时按 ID 倒序兜底，保证列表顺序稳定
func sortByCreatedAtDesc(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
}

func cloneOrder(order *domain.Order) *domain.Order {
	out := *order
	if len(order.Items) > 0 {
		out.Items = make([]domain.OrderItem, len(order.Items))
		copy(out.Items, order.Items)
	}
	return &out
}
