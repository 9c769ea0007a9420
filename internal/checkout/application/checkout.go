// Package application 实现结账流程的应用服务层
package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	cart "github.com/wyfcoding/ecommerce/internal/cart/domain"
	"github.com/wyfcoding/ecommerce/internal/checkout/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
)

// EventPublisher 事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// PlaceOrderInput 下单输入，携带提交瞬间的购物车与定价快照
type PlaceOrderInput struct {
	UserID         string
	Items          []cart.CartItem
	Quote          cart.Quote
	ShippingMethod string
	Shipping       domain.ShippingInfo
}

// OrderPlacer 订单创建接口，由订单上下文实现
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (string, error)
}

// CheckoutService 结账应用服务
// 提交流程整体串行化，保证同一时刻至多一次提交在途
type CheckoutService struct {
	sessions  domain.SessionRepository
	carts     cart.CartRepository
	gateway   domain.PaymentGateway
	orders    OrderPlacer
	publisher EventPublisher

	submitMu sync.Mutex
}

// NewCheckoutService 创建结账应用服务
func NewCheckoutService(
	sessions domain.SessionRepository,
	carts cart.CartRepository,
	gateway domain.PaymentGateway,
	orders OrderPlacer,
	publisher EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		sessions:  sessions,
		carts:     carts,
		gateway:   gateway,
		orders:    orders,
		publisher: publisher,
	}
}

// StartCheckout 发起结账
// 空购物车直接拒绝；用户已有进行中的会话时返回原会话
func (s *CheckoutService) StartCheckout(ctx context.Context, userID string) (*domain.Session, error) {
	userCart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if userCart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	if existing, err := s.sessions.GetByUserID(ctx, userID); err == nil && existing.Status != domain.StatusConfirmed {
		return existing, nil
	}

	session := domain.NewSession(uuid.NewString(), userID)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	event := domain.CheckoutStartedEvent{
		SessionID: session.ID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicCheckoutStarted, userID, event)

	return session, nil
}

// GetSession 获取结账会话
func (s *CheckoutService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// UpdateShipping 写入配送信息，写入本身不触发校验，校验发生在推进时
func (s *CheckoutService) UpdateShipping(ctx context.Context, sessionID string, info domain.ShippingInfo) (*domain.Session, error) {
	return s.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.SetShipping(info)
	})
}

// SelectShippingMethod 选择配送方式
func (s *CheckoutService) SelectShippingMethod(ctx context.Context, sessionID, method string) (*domain.Session, error) {
	return s.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.SelectShippingMethod(method)
	})
}

// SelectPaymentMethod 选择支付方式
func (s *CheckoutService) SelectPaymentMethod(ctx context.Context, sessionID, method string) (*domain.Session, error) {
	return s.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.SelectPaymentMethod(method)
	})
}

// UpdatePayment 写入支付信息
func (s *CheckoutService) UpdatePayment(ctx context.Context, sessionID string, info domain.PaymentInfo) (*domain.Session, error) {
	return s.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.SetPayment(info)
	})
}

// mutate 读取-修改-保存会话
func (s *CheckoutService) mutate(ctx context.Context, sessionID string, fn func(*domain.Session) error) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Next 校验当前步骤并前进
func (s *CheckoutService) Next(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Next(); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.publishStepChanged(ctx, session)
	return session, nil
}

// Previous 后退一步
func (s *CheckoutService) Previous(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Previous(); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.publishStepChanged(ctx, session)
	return session, nil
}

// Submit 提交订单
// 扣款成功才清空购物车；失败时会话回到确认订单步骤，购物车原样保留
func (s *CheckoutService) Submit(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.beginSubmit(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	userCart, err := s.carts.GetByUserID(ctx, session.UserID)
	if err != nil {
		return nil, s.failSubmit(ctx, session, err)
	}
	if userCart.IsEmpty() {
		return nil, s.failSubmit(ctx, session, domain.ErrEmptyCart)
	}

	method := cart.ShippingMethod(session.ShippingMethod)
	quote := cart.PriceCart(userCart.Items, method)

	charge := domain.ChargeRequest{
		SessionID:      session.ID,
		Amount:         quote.Total,
		MaskedCard:     session.Payment.MaskedCardNumber(),
		CardholderName: session.Payment.CardholderName,
	}
	if err := s.gateway.Charge(ctx, charge); err != nil {
		return nil, s.failSubmit(ctx, session, err)
	}

	orderNumber, err := s.orders.PlaceOrder(ctx, PlaceOrderInput{
		UserID:         session.UserID,
		Items:          userCart.Items,
		Quote:          quote,
		ShippingMethod: session.ShippingMethod,
		Shipping:       session.Shipping,
	})
	if err != nil {
		return nil, s.failSubmit(ctx, session, err)
	}

	if err := s.carts.Delete(ctx, session.UserID); err != nil {
		logger.Error(ctx, "Failed to clear cart after order placed",
			"user_id", session.UserID, "order_number", orderNumber, "error", err)
	}

	session.CompleteSubmit(orderNumber)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	event := domain.OrderSubmittedEvent{
		SessionID:   session.ID,
		UserID:      session.UserID,
		OrderNumber: orderNumber,
		Total:       quote.Total.StringFixed(2),
		Timestamp:   time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicOrderSubmitted, session.UserID, event)

	return session, nil
}

// beginSubmit 串行化提交入口
// 前置步骤的数据在此整体复核，绕过推进校验的会话同样会被拦下
func (s *CheckoutService) beginSubmit(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Validate(domain.StepShippingInfo); err != nil {
		return nil, err
	}
	if err := session.Validate(domain.StepShippingMethod); err != nil {
		return nil, err
	}
	if err := session.Validate(domain.StepPaymentInfo); err != nil {
		return nil, err
	}
	if err := session.BeginSubmit(); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// failSubmit 回滚会话状态并发布失败事件，返回原始错误
func (s *CheckoutService) failSubmit(ctx context.Context, session *domain.Session, cause error) error {
	session.FailSubmit()
	if err := s.sessions.Save(ctx, session); err != nil {
		logger.Error(ctx, "Failed to persist session rollback",
			"session_id", session.ID, "error", err)
	}

	event := domain.OrderSubmissionFailedEvent{
		SessionID: session.ID,
		UserID:    session.UserID,
		Reason:    cause.Error(),
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicOrderSubmissionFailed, session.UserID, event)

	return cause
}

func (s *CheckoutService) publishStepChanged(ctx context.Context, session *domain.Session) {
	event := domain.CheckoutStepChangedEvent{
		SessionID: session.ID,
		UserID:    session.UserID,
		Step:      session.Step,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, domain.TopicCheckoutStepChanged, session.UserID, event)
}
