// Package domain 包含订单的领域模型
package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// Order 订单聚合
// 金额为下单瞬间的定价快照，后续商品调价不影响已生成订单
type Order struct {
	ID             uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber    string          `gorm:"uniqueIndex;size:32;not null" json:"order_number"`
	UserID         string          `gorm:"index;size:64;not null" json:"user_id"`
	Status         OrderStatus     `gorm:"size:16;not null" json:"status"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"subtotal"`
	ShippingFee    decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"shipping_fee"`
	Tax            decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"tax"`
	Total          decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"total"`
	ShippingMethod string          `gorm:"size:16;not null" json:"shipping_method"`
	Recipient      string          `gorm:"size:128" json:"recipient"`
	Address        string          `gorm:"size:256" json:"address"`
	City           string          `gorm:"size:64" json:"city"`
	State          string          `gorm:"size:64" json:"state"`
	ZipCode        string          `gorm:"size:16" json:"zip_code"`
	Country        string          `gorm:"size:64" json:"country"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单条目
type OrderItem struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint64          `gorm:"index;not null" json:"order_id"`
	ProductID string          `gorm:"size:64;not null" json:"product_id"`
	Name      string          `gorm:"size:128;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// ItemCount 条目数量之和
func (o *Order) ItemCount() int {
	var total int
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	ListByUserID(ctx context.Context, userID string) ([]Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status OrderStatus) error
}
