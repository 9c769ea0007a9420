package domain

import "time"

// CheckoutStartedEvent 结账会话创建事件
type CheckoutStartedEvent struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CheckoutStepChangedEvent 步骤变更事件
type CheckoutStepChangedEvent struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Step      Step      `json:"step"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderSubmittedEvent 下单成功事件
type OrderSubmittedEvent struct {
	SessionID   string    `json:"session_id"`
	UserID      string    `json:"user_id"`
	OrderNumber string    `json:"order_number"`
	Total       string    `json:"total"`
	Timestamp   time.Time `json:"timestamp"`
}

// OrderSubmissionFailedEvent 下单失败事件
type OrderSubmissionFailedEvent struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// 结账事件主题
const (
	TopicCheckoutStarted       = "checkout.started"
	TopicCheckoutStepChanged   = "checkout.step.changed"
	TopicOrderSubmitted        = "checkout.order.submitted"
	TopicOrderSubmissionFailed = "checkout.order.failed"
)
