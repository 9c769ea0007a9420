package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChargeRequest 扣款请求
type ChargeRequest struct {
	SessionID      string
	Amount         decimal.Decimal
	MaskedCard     string
	CardholderName string
}

// PaymentGateway 支付网关接口
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) error
}

// SessionRepository 结账会话仓储接口
type SessionRepository interface {
	Get(ctx context.Context, id string) (*Session, error)
	GetByUserID(ctx context.Context, userID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}
