package domain

import (
	"context"
	"time"
)

// CartItemAddedEvent 购物车添加商品事件
type CartItemAddedEvent struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemRemovedEvent 购物车移除商品事件
type CartItemRemovedEvent struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CartQuantityUpdatedEvent 购物车数量变更事件
type CartQuantityUpdatedEvent struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// CartClearedEvent 购物车清空事件
type CartClearedEvent struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher 事件发布接口
// 购物车的每次变更都会发布事件，订阅方以此感知失效，替代轮询式重算
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// 购物车事件主题
const (
	TopicCartItemAdded       = "cart.item.added"
	TopicCartItemRemoved     = "cart.item.removed"
	TopicCartQuantityUpdated = "cart.quantity.updated"
	TopicCartCleared         = "cart.cleared"
)
