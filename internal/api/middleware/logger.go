package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	applogger "campus-portal/pkg/logger"
)

// Logger 请求日志中间件（基于 Zap 结构化日志）
// 附带 request_id、user_id、role，Handler 挂到 c.Errors 的错误一并输出
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		l := applogger.WithRequest(logger, c.GetString(requestIDKey), c.GetString("user_id"), c.GetString("role"))
		fields := []zap.Field{
			zap.Int("status", statusCode),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", latency),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		if statusCode >= 500 {
			l.Error("请求处理失败", fields...)
		} else if statusCode >= 400 {
			l.Warn("客户端错误", fields...)
		} else {
			l.Info("请求完成", fields...)
		}
	}
}
