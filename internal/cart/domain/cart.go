// Package domain 包含购物车的领域模型与定价规则
package domain

import (
	"context"

	"github.com/shopspring/decimal"
	catalog "github.com/wyfcoding/ecommerce/internal/catalog/domain"
)

// CartItem 购物车条目
// 加购时拷贝商品的 id/name/price/image 快照
type CartItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Cart 购物车聚合
// 不变式：同一商品 ID 至多出现一个条目
type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// NewCart 创建空购物车
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID}
}

// AddItem 加购：已存在同 ID 条目时数量 +1，否则以数量 1 追加快照条目
func (c *Cart) AddItem(product catalog.Product) {
	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  1,
	})
}

// RemoveItem 移除条目，不存在时为无操作
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity 设置条目数量
// quantity <= 0 等价于 RemoveItem；不校验库存上限（与页面行为保持一致）
// 条目不存在时为无操作
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount 条目数
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// TotalQuantity 全部条目数量之和
func (c *Cart) TotalQuantity() int {
	var total int
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal 商品小计 Σ price × quantity
func (c *Cart) Subtotal() decimal.Decimal {
	return Subtotal(c.Items)
}

// CartRepository 购物车仓储接口
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, userID string) error
}
