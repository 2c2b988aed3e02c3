package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-portal/config"
	"campus-portal/internal/api/handler"
	"campus-portal/internal/model"
	"campus-portal/internal/session"
	"campus-portal/pkg/jwt"
	"campus-portal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{JWTSecret: "test-secret-key-for-unit-testing", SessionTTL: time.Hour})
}

func parseCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是 JSON: %s", w.Body.String())
	}
	return resp.Code
}

// ── JWTAuth ──

func setupAuthEngine(t *testing.T) (*gin.Engine, *jwt.Manager, *session.MemoryStore) {
	t.Helper()
	jwtMgr := newTestJWT()
	store := session.NewMemoryStore()

	r := gin.New()
	r.GET("/me", JWTAuth(jwtMgr, store, zap.NewNop()), func(c *gin.Context) {
		sess, ok := handler.MustGetSession(c)
		if !ok {
			return
		}
		u, _ := sess.User()
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "role": c.GetString("role")})
	})
	return r, jwtMgr, store
}

func loginSession(t *testing.T, store session.Store, jwtMgr *jwt.Manager, u model.User) (*session.Session, string) {
	t.Helper()
	sess := session.New(store, time.Hour, zap.NewNop())
	if err := sess.Begin(context.Background(), "upstream-token", u); err != nil {
		t.Fatalf("Begin 失败: %v", err)
	}
	token, err := jwtMgr.GenerateAccessToken(sess.ID(), u.ID, u.Role.String())
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}
	return sess, token
}

func TestJWTAuth_ValidSession(t *testing.T) {
	r, jwtMgr, store := setupAuthEngine(t)
	_, token := loginSession(t, store, jwtMgr, model.User{ID: "u1", Role: model.RoleStudent})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"id":"u1"`) || !strings.Contains(w.Body.String(), `"role":"student"`) {
		t.Errorf("会话未注入上下文: %s", w.Body.String())
	}
}

func TestJWTAuth_Rejections(t *testing.T) {
	r, jwtMgr, store := setupAuthEngine(t)

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"缺少认证头", "", response.CodeUnauthenticated},
		{"格式错误", "Token abc", response.CodeUnauthenticated},
		{"无效 Token", "Bearer not-a-jwt", response.CodeUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
			if code := parseCode(t, w); code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, code)
			}
		})
	}

	// 会话已被销毁（登出或上游 401）：Token 仍在有效期内也拒绝
	sess, token := loginSession(t, store, jwtMgr, model.User{ID: "u1", Role: model.RoleAdmin})
	sess.Expire(context.Background())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized || parseCode(t, w) != response.CodeSessionExpired {
		t.Errorf("会话销毁后期望 401/11002，实际 %d %s", w.Code, w.Body.String())
	}
}

// ── RoleAuth ──

func TestRoleAuth(t *testing.T) {
	tests := []struct {
		role       string
		wantStatus int
	}{
		{"admin", http.StatusOK},
		{"teacher", http.StatusOK},
		{"student", http.StatusForbidden},
		{"", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) {
				if tt.role != "" {
					c.Set("role", tt.role)
				}
			}, RoleAuth(model.RoleAdmin, model.RoleTeacher), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

// ── RateLimit ──

type fakeLimiter struct {
	allowed int
	err     error
	keys    []string
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return false, f.err
	}
	f.allowed++
	return f.allowed <= limit, nil
}

func TestRateLimit(t *testing.T) {
	limiter := &fakeLimiter{}
	r := gin.New()
	r.POST("/login", RateLimit(limiter, 2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("期望 200,200,429，实际=%v", codes)
	}
	if !strings.HasSuffix(limiter.keys[0], ":/login") {
		t.Errorf("限流键应包含路由: %s", limiter.keys[0])
	}
}

func TestRateLimit_Degrades(t *testing.T) {
	for name, limiter := range map[string]RateLimiter{
		"nil":   nil,
		"error": &fakeLimiter{err: errors.New("redis down")},
	} {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.POST("/login", RateLimit(limiter, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })
			for i := 0; i < 3; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
				if w.Code != http.StatusOK {
					t.Fatalf("降级时应放行，实际=%d", w.Code)
				}
			}
		})
	}
}

// ── BodyLimit / RequestID / CORS ──

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x", strings.NewReader(strings.Repeat("a", 64))))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
	if code := parseCode(t, w); code != response.CodeBodyTooLarge {
		t.Errorf("expected code 10005, got %d", code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x", strings.NewReader("small")))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(requestIDHeader, "trace-1")
	r.ServeHTTP(w, req)
	if w.Body.String() != "trace-1" || w.Header().Get(requestIDHeader) != "trace-1" {
		t.Errorf("应沿用传入的 Request-ID，实际=%q", w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", requestIDMaxLen+1))
	r.ServeHTTP(w, req)
	if len(w.Body.String()) != 36 {
		t.Errorf("超长 ID 应替换为 UUID，实际=%q", w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("预检期望 204，实际=%d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("白名单来源应回写 Allow-Origin")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("非白名单来源不应回写 Allow-Origin")
	}
}
