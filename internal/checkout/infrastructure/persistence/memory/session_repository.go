// Package memory 提供结账会话的内存仓储实现
package memory

import (
	"context"
	"sync"

	"github.com/wyfcoding/ecommerce/internal/checkout/domain"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	byUser   map[string]string
}

// NewSessionRepository 创建内存结账会话仓储
func NewSessionRepository() domain.SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*domain.Session),
		byUser:   make(map[string]string),
	}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// GetByUserID 按用户查找进行中的会话，一个用户至多一个活跃会话
func (r *sessionRepository) GetByUserID(ctx context.Context, userID string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(r.sessions[id]), nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = cloneSession(session)
	r.byUser[session.UserID] = session.ID
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[id]; ok {
		delete(r.byUser, session.UserID)
		delete(r.sessions, id)
	}
	return nil
}

func cloneSession(session *domain.Session) *domain.Session {
	out := *session
	return &out
}
