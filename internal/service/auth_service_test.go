package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"campus-portal/config"
	"campus-portal/internal/dto"
	"campus-portal/internal/model"
	"campus-portal/internal/session"
	pkgerrors "campus-portal/pkg/errors"
	"campus-portal/pkg/jwt"
)

func setupTestAuthService() (AuthService, *mockUpstream, *session.MemoryStore, *jwt.Manager) {
	m := newMockUpstream()
	seedCampus(m)
	m.login = &model.LoginResult{Token: "upstream-token", User: adminUser}
	store := session.NewMemoryStore()
	jwtMgr := jwt.NewManager(&config.AuthConfig{JWTSecret: "test-secret-key-for-unit-testing", SessionTTL: time.Hour})
	return NewAuthService(m.factory(), store, jwtMgr, zap.NewNop()), m, store, jwtMgr
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, store, jwtMgr := setupTestAuthService()
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: adminUser.Email, Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.ExpiresIn != 3600 {
		t.Errorf("响应字段错误: %+v", resp)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("网关 Token 应可解析: %v", err)
	}
	if claims.UserID != adminUser.ID || claims.Role != "admin" {
		t.Errorf("Claims 错误: %+v", claims)
	}

	// 会话已持久化，且保存的是上游 Token
	sess, err := session.Restore(ctx, store, claims.SessionID, time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("会话应可恢复: %v", err)
	}
	if tok, _ := sess.Token(); tok != "upstream-token" {
		t.Errorf("期望上游 Token，实际=%q", tok)
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: adminUser.Email, Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UpstreamDown(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()
	m.fail["Auth.Login"] = &pkgerrors.NetworkError{Op: "POST /auth/login", Err: errors.New("connection refused")}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: adminUser.Email, Password: "password123"})
	if !pkgerrors.IsNetwork(err) {
		t.Errorf("期望 NetworkError，实际: %v", err)
	}
}

// ── Register 测试 ──

func TestAuthService_Register(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()

	u, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "new@school.edu", Password: "password123", FirstName: "New", LastName: "One", Role: "Teacher",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if u.Role != model.RoleTeacher {
		t.Errorf("期望 teacher，实际=%v", u.Role)
	}

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{Email: "x@school.edu", Role: "janitor"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("未知角色期望 ErrInvalidInput，实际: %v", err)
	}
	if m.called("Auth.Register") != 1 {
		t.Errorf("期望 1 次上游注册，实际=%d", m.called("Auth.Register"))
	}
}

// ── Logout / Me 测试 ──

func TestAuthService_Logout(t *testing.T) {
	svc, _, store, _ := setupTestAuthService()
	ctx := context.Background()

	sess := session.New(store, time.Hour, zap.NewNop())
	if err := sess.Begin(ctx, "tok", adminUser); err != nil {
		t.Fatalf("Begin 失败: %v", err)
	}
	if err := svc.Logout(ctx, sess); err != nil {
		t.Fatalf("Logout 应成功: %v", err)
	}
	if _, err := store.Load(ctx, sess.ID()); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("会话应已删除，实际: %v", err)
	}
	if err := svc.Logout(ctx, sess); !errors.Is(err, pkgerrors.ErrSessionExpired) {
		t.Errorf("重复登出期望 ErrSessionExpired，实际: %v", err)
	}
	if err := svc.Logout(ctx, nil); !errors.Is(err, pkgerrors.ErrSessionExpired) {
		t.Errorf("无会话期望 ErrSessionExpired，实际: %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()

	if _, err := svc.Me(context.Background(), nil); !errors.Is(err, pkgerrors.ErrSessionExpired) {
		t.Errorf("期望 ErrSessionExpired，实际: %v", err)
	}
	u, err := svc.Me(context.Background(), newTestSession(t, adminUser))
	if err != nil {
		t.Fatalf("Me 应成功: %v", err)
	}
	if u.ID != adminUser.ID || m.called("Auth.Me") != 1 {
		t.Errorf("期望从上游获取当前用户，实际=%+v", u)
	}
}
