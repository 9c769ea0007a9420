// Package domain 包含商品目录的领域模型
package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Category 商品分类
type Category string

const (
	CategoryAll         Category = "All"
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryJewelry     Category = "Jewelry"
	CategoryHome        Category = "Home"
	CategorySports      Category = "Sports"
	CategoryBooks       Category = "Books"
)

// Categories 全部分类，含 All 哨兵值
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategoryElectronics,
		CategoryFashion,
		CategoryJewelry,
		CategoryHome,
		CategorySports,
		CategoryBooks,
	}
}

// Product 商品实体
// 目录是商品的唯一属主，购物车与筛选引擎仅引用
type Product struct {
	// 商品 ID，目录内唯一
	ID string `json:"id"`
	// 商品名称
	Name string `json:"name"`
	// 原价
	Price decimal.Decimal `json:"price"`
	// 商品图片
	Image string `json:"image"`
	// 商品描述
	Description string `json:"description"`
	// 分类
	Category Category `json:"category"`
	// 评分 0.0-5.0
	Rating float64 `json:"rating"`
	// 评价数量
	Reviews int `json:"reviews"`
	// 折扣百分比 0-100，0 表示无折扣
	Discount int `json:"discount,omitempty"`
	// 库存（仅用于卖家视图展示，下单不校验库存）
	Stock int `json:"stock"`
	// 已售数量（仅用于卖家视图展示）
	Sold int `json:"sold"`
}

// DiscountedPrice 折后价：price × (1 − discount/100)
func (p *Product) DiscountedPrice() decimal.Decimal {
	if p.Discount <= 0 {
		return p.Price
	}
	factor := decimal.NewFromInt(100 - int64(p.Discount)).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor)
}

// Review 商品评价
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	User      string    `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// 按目录顺序返回全部商品
	List(ctx context.Context) ([]Product, error)
	// 获取单个商品
	Get(ctx context.Context, id string) (*Product, error)
	// 获取商品评价列表
	ListReviews(ctx context.Context, productID string) ([]Review, error)
}
