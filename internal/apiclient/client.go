package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	pkgerrors "campus-portal/pkg/errors"
)

// 响应体上限，防止上游异常返回超大内容
const maxResponseSize = 10 << 20

// TokenSource 由 *session.Session 实现
type TokenSource interface {
	Token() (string, bool)
	Expire(ctx context.Context) bool
}

// Client 上游教务 REST API 客户端
// 已认证请求携带 Bearer token；收到 401 时结束会话，之后不再发出任何认证请求
type Client struct {
	baseURL string
	http    *http.Client
	session TokenSource
	logger  *zap.Logger
}

// New 创建客户端，baseURL 需包含 /api 前缀
func New(baseURL string, timeout time.Duration, session TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: session,
		logger:  logger,
	}
}

// Do 发出已认证请求；body 非 nil 时编码为 JSON，out 非 nil 时解码响应
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if c.session == nil {
		return pkgerrors.ErrSessionExpired
	}
	token, ok := c.session.Token()
	if !ok {
		return pkgerrors.ErrSessionExpired
	}
	return c.send(ctx, method, path, query, body, out, token)
}

// DoPublic 发出无需认证的请求（登录、注册）
func (c *Client) DoPublic(ctx context.Context, method, path string, body, out interface{}) error {
	return c.send(ctx, method, path, nil, body, out, "")
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out interface{}, token string) error {
	op := method + " " + path

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("编码请求体失败: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &pkgerrors.NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("上游请求失败", zap.String("op", op), zap.Error(err))
		return &pkgerrors.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &pkgerrors.NetworkError{Op: op, Err: err}
	}

	c.logger.Debug("上游请求",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decode(op, raw, out)
	}

	detail := parseDetail(raw)
	switch {
	case resp.StatusCode == http.StatusUnauthorized && token != "":
		c.session.Expire(ctx)
		return pkgerrors.ErrSessionExpired
	case resp.StatusCode == http.StatusNotFound:
		return &pkgerrors.NotFoundError{Detail: detail}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &pkgerrors.ValidationError{Status: resp.StatusCode, Detail: detail}
	default:
		c.logger.Warn("上游返回错误",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail),
		)
		return &pkgerrors.APIError{Status: resp.StatusCode, Detail: detail}
	}
}

func decode(op string, raw []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// 枚举字段越界等由模型层给出的错误保持原样
		var iv *pkgerrors.InvariantViolation
		if errors.As(err, &iv) {
			return iv
		}
		return &pkgerrors.NetworkError{Op: op + " decode", Err: err}
	}
	return nil
}

// parseDetail 提取 {"detail": "..."} 或 FastAPI 校验错误列表中的 msg
func parseDetail(raw []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Detail) == 0 {
		return pkgerrors.DefaultDetail
	}

	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
		return pkgerrors.DefaultDetail
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(env.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return pkgerrors.DefaultDetail
}
