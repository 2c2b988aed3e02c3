package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-portal/internal/session"
	"campus-portal/pkg/response"
)

// SessionKey JWT 中间件注入会话时使用的上下文键
const SessionKey = "session"

// MustGetSession 从 Gin 上下文中安全提取会话。
// 如果 JWT 中间件未正确注入会话，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthenticated, "未认证")
		return nil, false
	}
	sess, ok := v.(*session.Session)
	if !ok || sess == nil {
		response.Unauthorized(c, response.CodeUnauthenticated, "未认证")
		return nil, false
	}
	return sess, true
}

// bindJSON 绑定请求体；超出大小限制返回 413，其余返回 400
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
		return false
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "参数校验失败", err.Error())
	return false
}
