package application

import (
	"context"

	"github.com/wyfcoding/ecommerce/internal/cart/domain"
)

// CartQueryService 购物车查询服务
type CartQueryService struct {
	repo domain.CartRepository
}

// NewCartQueryService 创建购物车查询服务实例
func NewCartQueryService(repo domain.CartRepository) *CartQueryService {
	return &CartQueryService{repo: repo}
}

// GetCart 获取用户购物车
func (s *CartQueryService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// GetQuote 对当前购物车计算报价，空购物车同样给出报价而非报错
func (s *CartQueryService) GetQuote(ctx context.Context, userID string, method domain.ShippingMethod) (*domain.Quote, error) {
	if !method.Valid() {
		return nil, domain.ErrInvalidShippingMethod
	}

	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quote := domain.PriceCart(cart.Items, method)
	return &quote, nil
}
