// Package domain 包含结账会话的领域模型与状态机
package domain

import (
	"strings"
	"time"
	"unicode"
)

// Step 结账步骤，线性推进，不允许跳步
type Step int

const (
	StepShippingInfo   Step = 1
	StepShippingMethod Step = 2
	StepPaymentInfo    Step = 3
	StepReview         Step = 4
)

// Status 会话状态
type Status string

const (
	// StatusActive 会话进行中，可继续编辑与前后移动
	StatusActive Status = "active"
	// StatusProcessing 提交进行中，拒绝并发提交与步骤变更
	StatusProcessing Status = "processing"
	// StatusConfirmed 下单成功，会话终态
	StatusConfirmed Status = "confirmed"
)

// 配送方式与支付方式
const (
	ShippingMethodStandard = "standard"
	ShippingMethodExpress  = "express"

	PaymentMethodCard = "card"
)

// ShippingInfo 配送信息，phone 与 state 为可选项
type ShippingInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

// PaymentInfo 支付信息
// 卡号与 CVV 绝不落日志，展示时使用 MaskedCardNumber
type PaymentInfo struct {
	CardNumber     string `json:"card_number"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholder_name"`
}

// MaskedCardNumber 仅保留末四位
func (p PaymentInfo) MaskedCardNumber() string {
	digits := digitsOf(p.CardNumber)
	if len(digits) < 4 {
		return "****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

// Session 结账会话聚合
type Session struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	Step           Step         `json:"step"`
	Shipping       ShippingInfo `json:"shipping"`
	ShippingMethod string       `json:"shipping_method"`
	PaymentMethod  string       `json:"payment_method"`
	Payment        PaymentInfo  `json:"payment"`
	Status         Status       `json:"status"`
	OrderNumber    string       `json:"order_number"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewSession 创建结账会话，起始于配送信息步骤
// 配送方式与支付方式带默认值，所以第 2 步的校验天然通过
func NewSession(id, userID string) *Session {
	now := time.Now()
	return &Session{
		ID:     id,
		UserID: userID,
		Step:   StepShippingInfo,
		Shipping: ShippingInfo{
			Country: "United States",
		},
		ShippingMethod: ShippingMethodStandard,
		PaymentMethod:  PaymentMethodCard,
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// SetShipping 写入配送信息，国家留空时回落默认值
func (s *Session) SetShipping(info ShippingInfo) error {
	if err := s.editable(); err != nil {
		return err
	}
	if info.Country == "" {
		info.Country = "United States"
	}
	s.Shipping = info
	s.UpdatedAt = time.Now()
	return nil
}

// SelectShippingMethod 选择配送方式
func (s *Session) SelectShippingMethod(method string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if method != ShippingMethodStandard && method != ShippingMethodExpress {
		return ErrInvalidShippingMethod
	}
	s.ShippingMethod = method
	s.UpdatedAt = time.Now()
	return nil
}

// SelectPaymentMethod 选择支付方式，card 之外的方式跳过卡字段校验
func (s *Session) SelectPaymentMethod(method string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if strings.TrimSpace(method) == "" {
		return ErrInvalidPaymentMethod
	}
	s.PaymentMethod = method
	s.UpdatedAt = time.Now()
	return nil
}

// SetPayment 写入支付信息
func (s *Session) SetPayment(info PaymentInfo) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.Payment = info
	s.UpdatedAt = time.Now()
	return nil
}

// Validate 校验指定步骤已填数据，未通过时返回 *ValidationError
// 只做非空校验，不做格式校验
func (s *Session) Validate(step Step) error {
	switch step {
	case StepShippingInfo:
		return s.validateShippingInfo()
	case StepShippingMethod:
		if s.ShippingMethod == "" {
			return &ValidationError{Step: step, Fields: map[string]string{"shipping_method": "required"}}
		}
		return nil
	case StepPaymentInfo:
		return s.validatePaymentInfo()
	case StepReview:
		return nil
	default:
		return ErrInvalidStep
	}
}

func (s *Session) validateShippingInfo() error {
	fields := map[string]string{}
	requireField(fields, "first_name", s.Shipping.FirstName)
	requireField(fields, "last_name", s.Shipping.LastName)
	requireField(fields, "email", s.Shipping.Email)
	requireField(fields, "address", s.Shipping.Address)
	requireField(fields, "city", s.Shipping.City)
	requireField(fields, "zip_code", s.Shipping.ZipCode)

	if len(fields) > 0 {
		return &ValidationError{Step: StepShippingInfo, Fields: fields}
	}
	return nil
}

func (s *Session) validatePaymentInfo() error {
	if s.PaymentMethod != PaymentMethodCard {
		return nil
	}

	fields := map[string]string{}
	requireField(fields, "card_number", s.Payment.CardNumber)
	requireField(fields, "expiry_month", s.Payment.ExpiryMonth)
	requireField(fields, "expiry_year", s.Payment.ExpiryYear)
	requireField(fields, "cvv", s.Payment.CVV)
	requireField(fields, "cardholder_name", s.Payment.CardholderName)

	if len(fields) > 0 {
		return &ValidationError{Step: StepPaymentInfo, Fields: fields}
	}
	return nil
}

// Next 校验当前步骤后前进一步，封顶在确认订单步骤
func (s *Session) Next() error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.Step >= StepReview {
		return ErrNotAdvanceable
	}
	if err := s.Validate(s.Step); err != nil {
		return err
	}
	s.Step++
	s.UpdatedAt = time.Now()
	return nil
}

// Previous 后退一步，不做校验；首步后退为无操作
func (s *Session) Previous() error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.Step > StepShippingInfo {
		s.Step--
		s.UpdatedAt = time.Now()
	}
	return nil
}

// BeginSubmit 进入提交流程
// 仅允许在确认订单步骤发起，提交期间会话锁定
func (s *Session) BeginSubmit() error {
	switch s.Status {
	case StatusProcessing:
		return ErrSubmissionInFlight
	case StatusConfirmed:
		return ErrSessionClosed
	}
	if s.Step != StepReview {
		return ErrNotReviewStep
	}
	s.Status = StatusProcessing
	s.UpdatedAt = time.Now()
	return nil
}

// CompleteSubmit 提交成功，记录订单号，会话进入终态
func (s *Session) CompleteSubmit(orderNumber string) {
	s.Status = StatusConfirmed
	s.OrderNumber = orderNumber
	s.UpdatedAt = time.Now()
}

// FailSubmit 提交失败，会话回到可编辑状态，停留在确认订单步骤
func (s *Session) FailSubmit() {
	s.Status = StatusActive
	s.Step = StepReview
	s.UpdatedAt = time.Now()
}

func (s *Session) editable() error {
	switch s.Status {
	case StatusProcessing:
		return ErrSubmissionInFlight
	case StatusConfirmed:
		return ErrSessionClosed
	}
	return nil
}

func requireField(fields map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = "required"
	}
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
