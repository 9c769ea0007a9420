// Package memory 提供目录的内存仓储实现，启动时注入种子数据
package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
)

type productRepository struct {
	products []domain.Product
	reviews  map[string][]domain.Review
}

// NewProductRepository 创建内存商品仓储并注入种子目录
func NewProductRepository() domain.ProductRepository {
	return &productRepository{
		products: seedProducts(),
		reviews:  seedReviews(),
	}
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *productRepository) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	reviews := r.reviews[productID]
	out := make([]domain.Review, len(reviews))
	copy(out, reviews)
	return out, nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Elegant Gold Bracelet",
			Price:       price("89.99"),
			Image:       "/static/products/gold-bracelet.jpg",
			Description: "Beautiful gold bracelet perfect for any occasion",
			Category:    domain.CategoryJewelry,
			Rating:      4.8,
			Reviews:     127,
			Discount:    15,
			Stock:       15,
			Sold:        24,
		},
		{
			ID:          "2",
			Name:        "Designer Handbag",
			Price:       price("199.99"),
			Image:       "/static/products/designer-handbag.jpg",
			Description: "Luxurious designer handbag with premium materials",
			Category:    domain.CategoryFashion,
			Rating:      4.9,
			Reviews:     89,
			Discount:    20,
			Stock:       8,
			Sold:        18,
		},
		{
			ID:          "3",
			Name:        "Wireless Earbuds",
			Price:       price("149.99"),
			Image:       "/static/products/wireless-earbuds.jpg",
			Description: "High-quality wireless earbuds with noise cancellation",
			Category:    domain.CategoryElectronics,
			Rating:      4.7,
			Reviews:     234,
			Discount:    10,
			Stock:       32,
			Sold:        41,
		},
		{
			ID:          "4",
			Name:        "Smartwatch Pro",
			Price:       price("299.99"),
			Image:       "/static/products/smartwatch-pro.jpg",
			Description: "Advanced smartwatch with health tracking features",
			Category:    domain.CategoryElectronics,
			Rating:      4.6,
			Reviews:     156,
			Discount:    25,
			Stock:       12,
			Sold:        29,
		},
		{
			ID:          "5",
			Name:        "Running Shoes",
			Price:       price("129.99"),
			Image:       "/static/products/running-shoes.jpg",
			Description: "Comfortable running shoes for all terrains",
			Category:    domain.CategorySports,
			Rating:      4.5,
			Reviews:     203,
			Discount:    5,
			Stock:       27,
			Sold:        35,
		},
		{
			ID:          "6",
			Name:        "Leather Wallet",
			Price:       price("79.99"),
			Image:       "/static/products/leather-wallet.jpg",
			Description: "Premium leather wallet with RFID protection",
			Category:    domain.CategoryFashion,
			Rating:      4.7,
			Reviews:     98,
			Stock:       40,
			Sold:        22,
		},
		{
			ID:          "7",
			Name:        "Coffee Maker",
			Price:       price("249.99"),
			Image:       "/static/products/coffee-maker.jpg",
			Description: "Automatic coffee maker with programmable settings",
			Category:    domain.CategoryHome,
			Rating:      4.4,
			Reviews:     167,
			Discount:    12,
			Stock:       9,
			Sold:        14,
		},
		{
			ID:          "8",
			Name:        "Bestseller Novel",
			Price:       price("24.99"),
			Image:       "/static/products/bestseller-novel.jpg",
			Description: "Popular fiction novel by renowned author",
			Category:    domain.CategoryBooks,
			Rating:      4.8,
			Reviews:     321,
			Stock:       120,
			Sold:        87,
		},
	}
}

func seedReviews() map[string][]domain.Review {
	return map[string][]domain.Review{
		"1": {
			{
				ID:        "r1",
				ProductID: "1",
				User:      "Sarah Johnson",
				Rating:    5,
				Comment:   "Absolutely stunning bracelet, looks even better in person.",
				Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			},
			{
				ID:        "r2",
				ProductID: "1",
				User:      "Mike Chen",
				Rating:    4,
				Comment:   "Great quality for the price, clasp feels a bit delicate.",
				Date:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			},
			{
				ID:        "r3",
				ProductID: "1",
				User:      "Emily Davis",
				Rating:    5,
				Comment:   "Bought it as a gift, she loved it.",
				Date:      time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}
