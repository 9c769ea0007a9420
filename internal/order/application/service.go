// Package application 实现订单的应用服务层
package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/pkg/utils"
)

// EventPublisher 事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// OrderItemInput 订单条目输入
type OrderItemInput struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// CreateOrderCommand 创建订单命令，金额为上游传入的定价快照
type CreateOrderCommand struct {
	UserID         string
	Items          []OrderItemInput
	Subtotal       decimal.Decimal
	ShippingFee    decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	ShippingMethod string
	Recipient      string
	Address        string
	City           string
	State          string
	ZipCode        string
	Country        string
}

// OrderService 订单应用服务
type OrderService struct {
	repo      domain.OrderRepository
	publisher EventPublisher
}

// NewOrderService 创建订单应用服务实例
func NewOrderService(repo domain.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{repo: repo, publisher: publisher}
}

// Create 创建订单，返回生成的订单号
func (s *OrderService) Create(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	order := &domain.Order{
		OrderNumber:    utils.GenerateOrderNumber(),
		UserID:         cmd.UserID,
		Status:         domain.OrderStatusPending,
		Subtotal:       cmd.Subtotal,
		ShippingFee:    cmd.ShippingFee,
		Tax:            cmd.Tax,
		Total:          cmd.Total,
		ShippingMethod: cmd.ShippingMethod,
		Recipient:      cmd.Recipient,
		Address:        cmd.Address,
		City:           cmd.City,
		State:          cmd.State,
		ZipCode:        cmd.ZipCode,
		Country:        cmd.Country,
		Items:          items,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	event := domain.OrderCreatedEvent{
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Total:       order.Total.StringFixed(2),
		ItemCount:   order.ItemCount(),
		Timestamp:   time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicOrderCreated, order.UserID, event)

	return order, nil
}

// Get 按订单号获取订单
func (s *OrderService) Get(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.repo.GetByOrderNumber(ctx, orderNumber)
}

// ListByUser 用户订单列表，按创建时间倒序
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// List 全量订单列表，供后台使用
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// UpdateStatus 更新订单状态
func (s *OrderService) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus) error {
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, orderNumber, status); err != nil {
		return err
	}

	event := domain.OrderStatusChangedEvent{
		OrderNumber: orderNumber,
		Status:      status,
		Timestamp:   time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicOrderStatusChanged, orderNumber, event)

	return nil
}
