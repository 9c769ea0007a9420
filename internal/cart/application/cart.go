// Package application 实现购物车的应用服务层
package application

import (
	"context"

	"github.com/wyfcoding/ecommerce/internal/cart/domain"
)

// CartService 购物车应用服务门面，聚合命令与查询
type CartService struct {
	commands *CartCommandService
	queries  *CartQueryService
}

// NewCartService 创建购物车应用服务
func NewCartService(
	repo domain.CartRepository,
	products ProductProvider,
	publisher domain.EventPublisher,
) *CartService {
	return &CartService{
		commands: NewCartCommandService(repo, products, publisher),
		queries:  NewCartQueryService(repo),
	}
}

// AddItem 添加商品到购物车
func (s *CartService) AddItem(ctx context.Context, userID, productID string) error {
	return s.commands.AddItem(ctx, AddItemCommand{UserID: userID, ProductID: productID})
}

// UpdateQuantity 更新条目数量
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	return s.commands.UpdateQuantity(ctx, UpdateQuantityCommand{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// RemoveItem 从购物车移除商品
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	return s.commands.RemoveItem(ctx, RemoveItemCommand{UserID: userID, ProductID: productID})
}

// ClearCart 清空购物车
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.commands.ClearCart(ctx, ClearCartCommand{UserID: userID})
}

// GetCart 获取购物车
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.queries.GetCart(ctx, userID)
}

// GetQuote 获取当前购物车报价
func (s *CartService) GetQuote(ctx context.Context, userID string, method domain.ShippingMethod) (*domain.Quote, error) {
	return s.queries.GetQuote(ctx, userID, method)
}
