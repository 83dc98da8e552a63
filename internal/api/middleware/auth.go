package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/homecook/pkg/response"
)

const identityKey = "identity"

// Identity 登录态身份，由 Auth 中间件放进 gin context
type Identity struct {
	ID    int64
	Email string
	Role  string
}

// Auth 校验 Bearer JWT 并注入 Identity
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "missing or malformed token")
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		ident, err := parseToken(tokenStr, secret)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

func parseToken(tokenStr, secret string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return Identity{}, errors.New("missing id claim")
	}
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	return Identity{ID: int64(id), Email: email, Role: role}, nil
}

// CurrentUser 取出 Auth 注入的身份
func CurrentUser(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}

// RequireRoles 角色白名单，不在名单内一律 403
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		ident, ok := CurrentUser(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		if _, ok := allowed[ident.Role]; !ok {
			response.Forbidden(c, "forbidden: access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
