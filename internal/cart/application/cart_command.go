package application

import (
	"context"
	"time"

	"github.com/wyfcoding/ecommerce/internal/cart/domain"
	catalog "github.com/wyfcoding/ecommerce/internal/catalog/domain"
)

// ProductProvider 目录侧的只读商品来源
type ProductProvider interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

// AddItemCommand 添加商品到购物车命令
type AddItemCommand struct {
	UserID    string
	ProductID string
}

// UpdateQuantityCommand 更新购物车数量命令
type UpdateQuantityCommand struct {
	UserID    string
	ProductID string
	Quantity  int
}

// RemoveItemCommand 从购物车移除商品命令
type RemoveItemCommand struct {
	UserID    string
	ProductID string
}

// ClearCartCommand 清空购物车命令
type ClearCartCommand struct {
	UserID string
}

// CartCommandService 购物车命令服务
type CartCommandService struct {
	repo      domain.CartRepository
	products  ProductProvider
	publisher domain.EventPublisher
}

// NewCartCommandService 创建购物车命令服务实例
func NewCartCommandService(
	repo domain.CartRepository,
	products ProductProvider,
	publisher domain.EventPublisher,
) *CartCommandService {
	return &CartCommandService{
		repo:      repo,
		products:  products,
		publisher: publisher,
	}
}

// AddItem 处理添加商品到购物车
// 同一商品重复加购只增加数量，购物车内每个商品 ID 至多一个条目
func (s *CartCommandService) AddItem(ctx context.Context, cmd AddItemCommand) error {
	product, err := s.products.Get(ctx, cmd.ProductID)
	if err != nil {
		return err
	}

	cart, err := s.repo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return err
	}

	cart.AddItem(*product)
	if err := s.repo.Save(ctx, cart); err != nil {
		return err
	}

	event := domain.CartItemAddedEvent{
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
		Quantity:  quantityOf(cart, cmd.ProductID),
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicCartItemAdded, cmd.UserID, event)

	return nil
}

// UpdateQuantity 处理数量变更
// quantity <= 0 等价于移除；条目不存在时为无操作，不算错误
func (s *CartCommandService) UpdateQuantity(ctx context.Context, cmd UpdateQuantityCommand) error {
	cart, err := s.repo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return err
	}

	cart.UpdateQuantity(cmd.ProductID, cmd.Quantity)
	if err := s.repo.Save(ctx, cart); err != nil {
		return err
	}

	if cmd.Quantity <= 0 {
		event := domain.CartItemRemovedEvent{
			UserID:    cmd.UserID,
			ProductID: cmd.ProductID,
			Timestamp: time.Now(),
		}
		s.publisher.Publish(ctx, domain.TopicCartItemRemoved, cmd.UserID, event)
		return nil
	}

	event := domain.CartQuantityUpdatedEvent{
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicCartQuantityUpdated, cmd.UserID, event)

	return nil
}

// RemoveItem 处理从购物车移除商品
func (s *CartCommandService) RemoveItem(ctx context.Context, cmd RemoveItemCommand) error {
	cart, err := s.repo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return err
	}

	cart.RemoveItem(cmd.ProductID)
	if err := s.repo.Save(ctx, cart); err != nil {
		return err
	}

	event := domain.CartItemRemovedEvent{
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicCartItemRemoved, cmd.UserID, event)

	return nil
}

// ClearCart 处理清空购物车
func (s *CartCommandService) ClearCart(ctx context.Context, cmd ClearCartCommand) error {
	if err := s.repo.Delete(ctx, cmd.UserID); err != nil {
		return err
	}

	event := domain.CartClearedEvent{
		UserID:    cmd.UserID,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicCartCleared, cmd.UserID, event)

	return nil
}

func quantityOf(cart *domain.Cart, productID string) int {
	for _, item := range cart.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}
