package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/proj-int-univesp/lai-cmg/pkg/jwt"
	"github.com/proj-int-univesp/lai-cmg/pkg/redis"
	"github.com/proj-int-univesp/lai-cmg/pkg/response"
)

// JWTAuth validates the Authorization: Bearer <token> header, rejects
// blacklisted tokens when redis is available and injects account_id and
// role into the request context.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.TokenType != jwt.TokenTypeAccess {
			response.Unauthorized(c, 10002, "invalid token type")
			c.Abort()
			return
		}

		// redis outages degrade to signature-only validation
		if rdb != nil && claims.ID != "" {
			if blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && blacklisted {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set("account_id", claims.AccountID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RoleAuth allows the request through only when the authenticated role is
// one of allowedRoles.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		current := role.(string)
		for _, r := range allowedRoles {
			if current == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient role")
		c.Abort()
	}
}
