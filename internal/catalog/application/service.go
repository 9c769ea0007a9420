package application

import (
	"context"

	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
)

// CatalogQueryService 目录查询服务
type CatalogQueryService struct {
	repo domain.ProductRepository
}

// NewCatalogQueryService 创建目录查询服务实例
func NewCatalogQueryService(repo domain.ProductRepository) *CatalogQueryService {
	return &CatalogQueryService{repo: repo}
}

// ListProducts 按目录顺序返回全部商品
func (s *CatalogQueryService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// SearchProducts 按筛选条件返回商品视图
func (s *CatalogQueryService) SearchProducts(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return criteria.Apply(products), nil
}

// GetProduct 获取单个商品
func (s *CatalogQueryService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

// ListReviews 获取商品评价
func (s *CatalogQueryService) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	if _, err := s.repo.Get(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, productID)
}
