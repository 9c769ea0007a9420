// Package messaging 提供购物车事件的发布实现
package messaging

import (
	"context"
	"sync"

	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/mq"
)

// KafkaEventPublisher 将领域事件发布到 Kafka
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
}

// NewKafkaEventPublisher 创建 Kafka 事件发布者
func NewKafkaEventPublisher(producer *mq.KafkaProducer) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer}
}

// Publish 发布事件
func (p *KafkaEventPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return p.producer.SendMessage(ctx, topic, key, event)
}

// LogEventPublisher 仅记录日志的事件发布者，未配置 broker 时使用
type LogEventPublisher struct{}

// NewLogEventPublisher 创建日志事件发布者
func NewLogEventPublisher() *LogEventPublisher {
	return &LogEventPublisher{}
}

// Publish 发布一个普通事件
func (p *LogEventPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	logger.Debug(ctx, "Publishing event", "topic", topic, "key", key, "event", event)
	return nil
}

// Subscriber 进程内订阅回调
type Subscriber func(ctx context.Context, key string, event any)

// Bus 进程内事件总线
// 同进程读模型通过 Subscribe 感知购物车变更；发布从不失败
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Subscriber
	next        EventPublisherChain
}

// EventPublisherChain 允许把总线串接到下一个发布者（如 Kafka）
type EventPublisherChain interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// NewBus 创建事件总线，next 可为 nil
func NewBus(next EventPublisherChain) *Bus {
	return &Bus{
		subscribers: make(map[string][]Subscriber),
		next:        next,
	}
}

// Subscribe 订阅指定主题
func (b *Bus) Subscribe(topic string, fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[topic] = append(b.subscribers[topic], fn)
}

// Publish 同步分发给本地订阅者，再转发给下游发布者
func (b *Bus) Publish(ctx context.Context, topic string, key string, event any) error {
	b.mu.RLock()
	subs := b.subscribers[topic]
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(ctx, key, event)
	}

	if b.next != nil {
		return b.next.Publish(ctx, topic, key, event)
	}
	return nil
}
