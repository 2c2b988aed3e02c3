package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-portal/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// 声明长度超限时直接返回 413；其余情况由 MaxBytesReader 在读取时截断，
// 由 Handler 绑定请求体时识别并返回 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
