// Package utils 提供时间/ID（雪花）等通用工具
package utils

import (
	"fmt"
	"sync"
	"time"
)

// SnowflakeID 雪花算法 ID 生成器
type SnowflakeID struct {
	mu        sync.Mutex
	timestamp int64
	sequence  int64
	nodeID    int64
}

// NewSnowflakeID 创建雪花 ID 生成器
func NewSnowflakeID(nodeID int64) *SnowflakeID {
	return &SnowflakeID{
		timestamp: 0,
		sequence:  0,
		nodeID:    nodeID & 0x3FF, // 10 bits
	}
}

// Generate 生成雪花 ID
func (s *SnowflakeID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()

	if now == s.timestamp {
		s.sequence = (s.sequence + 1) & 0xFFF // 12 bits
		if s.sequence == 0 {
			for now <= s.timestamp {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		s.sequence = 0
	}

	s.timestamp = now

	return (now << 22) | (s.nodeID << 12) | s.sequence
}

// GenerateOrderNumber 生成订单号，形如 ORD-1234567890
func (s *SnowflakeID) GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%d", s.Generate())
}

var defaultGenerator = NewSnowflakeID(1)

// GenerateOrderNumber 使用默认生成器生成订单号
func GenerateOrderNumber() string {
	return defaultGenerator.GenerateOrderNumber()
}
