package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-portal/internal/api/handler"
	"campus-portal/internal/model"
	"campus-portal/internal/session"
	"campus-portal/pkg/jwt"
	"campus-portal/pkg/response"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取网关 Token，再按 sid 从会话存储恢复会话
// 会话已登出或因上游 401 被销毁时返回 11002
func JWTAuth(jwtMgr *jwt.Manager, store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, response.CodeUnauthenticated, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, response.CodeUnauthenticated, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			code := response.CodeUnauthenticated
			if errors.Is(err, jwt.ErrTokenExpired) {
				code = response.CodeSessionExpired
			}
			response.Unauthorized(c, code, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, response.CodeUnauthenticated, "Token 类型无效")
			c.Abort()
			return
		}

		sess, err := session.Restore(c.Request.Context(), store, claims.SessionID, jwtMgr.TTL(), logger)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				response.Unauthorized(c, response.CodeSessionExpired, "登录已过期，请重新登录")
			} else {
				logger.Error("恢复会话失败", zap.String("sid", claims.SessionID), zap.Error(err))
				response.InternalError(c)
			}
			c.Abort()
			return
		}

		// 将会话与用户信息注入上下文
		c.Set(handler.SessionKey, sess)
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, response.CodeUnauthenticated, "未认证")
			c.Abort()
			return
		}

		userRole, _ := role.(string)
		for _, r := range allowedRoles {
			if userRole == r.String() {
				c.Next()
				return
			}
		}

		response.Forbidden(c, response.CodeForbidden, "无权限访问")
		c.Abort()
	}
}
