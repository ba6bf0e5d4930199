// Package middleware 提供 HTTP 请求的中间件
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"medivault-server/internal/cache"
	"medivault-server/pkg/jwt"
	"medivault-server/pkg/response"
	"medivault-server/pkg/util"
)

// AuthMiddleware 创建 JWT 认证中间件
// 从 Authorization 头解析 Bearer Token，验证通过后把用户信息写入上下文
// 参数:
//   - jwtService: JWT 服务，用于验证 Token
//   - redisCache: Redis 缓存，用于检查 Token 黑名单
//
// 返回:
//   - gin.HandlerFunc: Gin 中间件函数
func AuthMiddleware(jwtService *jwt.JWTService, redisCache *cache.RedisCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 提取 Authorization 头
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. 解析 Bearer Token
		// 格式: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		tokenString := parts[1]

		// 3. 验证 Token 签名和有效期
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				response.Unauthorized(c, "token has expired")
			} else {
				response.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		// 只接受 Access Token，Refresh Token 不能用于普通请求
		if claims.Subject != "access" {
			response.Unauthorized(c, "invalid token type")
			c.Abort()
			return
		}

		// 4. 检查黑名单（登出后的 Token 会被拉黑）
		if redisCache != nil && redisCache.IsTokenBlacklisted(c.Request.Context(), util.HashToken(tokenString)) {
			response.Unauthorized(c, "token has been revoked")
			c.Abort()
			return
		}

		// 5. 把用户信息写入上下文，供后续处理器使用
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("access_token", tokenString)

		c.Next()
	}
}
