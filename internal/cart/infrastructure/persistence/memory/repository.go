// Package memory 提供购物车的内存仓储实现
// 购物车仅存活于单次浏览会话，不做跨会话持久化
package memory

import (
	"context"
	"sync"

	"github.com/wyfcoding/ecommerce/internal/cart/domain"
)

type cartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewCartRepository 创建内存购物车仓储
func NewCartRepository() domain.CartRepository {
	return &cartRepository{carts: make(map[string]*domain.Cart)}
}

// GetByUserID 获取用户购物车，不存在时返回空购物车
func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return domain.NewCart(userID), nil
	}
	return cloneCart(cart), nil
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.UserID] = cloneCart(cart)
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}

// cloneCart 深拷贝，避免调用方共享内部切片
func cloneCart(cart *domain.Cart) *domain.Cart {
	out := domain.NewCart(cart.UserID)
	if len(cart.Items) > 0 {
		out.Items = make([]domain.CartItem, len(cart.Items))
		copy(out.Items, cart.Items)
	}
	return out
}
