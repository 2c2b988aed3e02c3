package errors

import (
	"errors"
	"fmt"
)

// ErrSessionExpired 上游返回 401：会话已清除，需重新登录
var ErrSessionExpired = errors.New("会话已过期，请重新登录")

// DefaultDetail 上游未提供错误信息时的通用提示
const DefaultDetail = "请求失败，请稍后重试"

// ValidationError 上游 4xx（创建/更新被拒绝），Detail 原样展示给用户
type ValidationError struct {
	Status int
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("校验失败(%d): %s", e.Status, e.Detail)
}

// NotFoundError 引用的记录不存在
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	return "记录不存在: " + e.Detail
}

// NetworkError 传输层失败或响应体无法解析
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("网络错误(%s): %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError 其余非 2xx 响应（主要是上游 5xx）
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("上游错误(%d): %s", e.Status, e.Detail)
}

// InvariantViolation 聚合计算收到不一致的数据
type InvariantViolation struct {
	Field  string
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("数据不一致: %s %s", e.Field, e.Reason)
}

// Invariant 构造 InvariantViolation
func Invariant(field, format string, args ...interface{}) error {
	return &InvariantViolation{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation 判断是否为 ValidationError，并返回之
func IsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	ok := errors.As(err, &v)
	return v, ok
}

// IsNotFound 判断是否为 NotFoundError
func IsNotFound(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

// IsNetwork 判断是否为 NetworkError
func IsNetwork(err error) bool {
	var v *NetworkError
	return errors.As(err, &v)
}

// IsInvariant 判断是否为 InvariantViolation
func IsInvariant(err error) bool {
	var v *InvariantViolation
	return errors.As(err, &v)
}
