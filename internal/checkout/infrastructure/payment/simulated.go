// Package payment 提供模拟支付网关实现
package payment

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/wyfcoding/ecommerce/internal/checkout/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
)

// SimulatedGateway 模拟支付网关
// 固定延迟后按配置概率拒绝扣款，failureRate 为 0 时总是成功
type SimulatedGateway struct {
	delay       time.Duration
	failureRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedGateway 创建模拟支付网关
func NewSimulatedGateway(delay time.Duration, failureRate float64) *SimulatedGateway {
	return &SimulatedGateway{
		delay:       delay,
		failureRate: failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Charge 模拟扣款
func (g *SimulatedGateway) Charge(ctx context.Context, req domain.ChargeRequest) error {
	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if g.failureRate > 0 && g.roll() < g.failureRate {
		logger.Warn(ctx, "Simulated payment declined",
			"session_id", req.SessionID, "amount", req.Amount.StringFixed(2))
		return &domain.SubmissionError{Reason: "payment declined"}
	}

	logger.Info(ctx, "Simulated payment captured",
		"session_id", req.SessionID,
		"amount", req.Amount.StringFixed(2),
		"card", req.MaskedCard)
	return nil
}

func (g *SimulatedGateway) roll() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}
