package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campus-portal/internal/model"
)

var (
	ErrEmptyToken    = errors.New("上游未返回 token")
	ErrAlreadyActive = errors.New("会话已处于登录状态")
)

// Session 一次登录对应的上游会话
//
// 状态：未登录 → Begin → 已登录 → End / Expire → 未登录。
// 注销只会执行一次：并发请求同时收到 401 时，仅第一个调用清理令牌并删除持久化记录。
type Session struct {
	mu     sync.Mutex
	id     string
	token  string
	user   model.User
	active bool

	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// New 创建未登录的会话
func New(store Store, ttl time.Duration, logger *zap.Logger) *Session {
	return &Session{store: store, ttl: ttl, logger: logger}
}

// Restore 按会话 ID 从存储中恢复已登录会话，记录不存在时返回 ErrNotFound
func Restore(ctx context.Context, store Store, id string, ttl time.Duration, logger *zap.Logger) (*Session, error) {
	rec, err := store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Token == "" {
		return nil, ErrNotFound
	}
	return &Session{
		id:     id,
		token:  rec.Token,
		user:   rec.User,
		active: true,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Begin 登录成功后建立会话并持久化
func (s *Session) Begin(ctx context.Context, token string, user model.User) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return ErrAlreadyActive
	}
	id := uuid.NewString()
	s.mu.Unlock()

	if err := s.store.Save(ctx, id, Record{Token: token, User: user}, s.ttl); err != nil {
		return err
	}

	s.mu.Lock()
	s.id, s.token, s.user, s.active = id, token, user, true
	s.mu.Unlock()

	s.logger.Info("会话已建立", zap.String("session_id", id), zap.String("user_id", user.ID))
	return nil
}

// ID 会话 ID，未登录时为空
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Token 当前上游令牌
func (s *Session) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.active
}

// User 当前登录用户
func (s *Session) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.active
}

// Active 是否处于登录状态
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// End 用户主动登出
func (s *Session) End(ctx context.Context) bool {
	return s.teardown(ctx, "logout")
}

// Expire 上游返回 401 时调用；返回值表示本次调用是否实际执行了清理
func (s *Session) Expire(ctx context.Context) bool {
	return s.teardown(ctx, "expired")
}

func (s *Session) teardown(ctx context.Context, reason string) bool {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return false
	}
	id := s.id
	s.id, s.token, s.user, s.active = "", "", model.User{}, false
	s.mu.Unlock()

	// 扇出请求中其他分支失败会取消 ctx，删除记录不受其影响
	if err := s.store.Delete(context.WithoutCancel(ctx), id); err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Warn("删除会话记录失败", zap.String("session_id", id), zap.Error(err))
	}
	s.logger.Info("会话已结束", zap.String("session_id", id), zap.String("reason", reason))
	return true
}
