package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSessionNotFound 会话不存在
	ErrSessionNotFound = errors.New("checkout session not found")
	// ErrEmptyCart 空购物车不能发起结账
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubmissionInFlight 提交进行中，拒绝并发操作
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrSessionClosed 会话已完成，拒绝后续变更
	ErrSessionClosed = errors.New("checkout session already confirmed")
	// ErrNotReviewStep 仅确认订单步骤可以提交
	ErrNotReviewStep = errors.New("submission only allowed at review step")
	// ErrNotAdvanceable 确认订单步骤之后只能通过提交推进
	ErrNotAdvanceable = errors.New("cannot advance past review step")
	// ErrInvalidStep 非法步骤编号
	ErrInvalidStep = errors.New("invalid checkout step")
	// ErrInvalidShippingMethod 配送方式不是 standard / express
	ErrInvalidShippingMethod = errors.New("invalid shipping method")
	// ErrInvalidPaymentMethod 支付方式为空
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// ValidationError 步骤校验失败，按字段给出原因
type ValidationError struct {
	Step   Step              `json:"step"`
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("step %d validation failed: %s", e.Step, strings.Join(names, ", "))
}

// SubmissionError 支付网关拒绝导致的提交失败
type SubmissionError struct {
	Reason string
}

func (e *SubmissionError) Error() string {
	return "order submission failed: " + e.Reason
}
