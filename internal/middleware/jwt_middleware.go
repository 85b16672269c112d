package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/affordablebilliards/billiards_api/internal/utils"
)

const sessionKey = "session"

// JWTMiddleware resolves the admin session from a Bearer token or the
// session cookie.
type JWTMiddleware struct {
	cookieName string
}

func NewJWTMiddleware(cookieName string) *JWTMiddleware {
	if cookieName == "" {
		cookieName = "session"
	}
	return &JWTMiddleware{cookieName: cookieName}
}

// Optional attaches the session when a valid token is present and never
// rejects the request. Public routes use it to widen what admins can see.
func (m *JWTMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := m.token(c); token != "" {
			if claims, err := utils.ValidateJWT(token); err == nil {
				setSession(c, claims)
			}
		}
		c.Next()
	}
}

// Required rejects requests without a valid admin session.
func (m *JWTMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.token(c)
		if token == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}
		if !claims.IsAdmin {
			utils.Error(c, 401, "UNAUTHORIZED", "Admin access required")
			c.Abort()
			return
		}

		setSession(c, claims)
		c.Next()
	}
}

func (m *JWTMiddleware) token(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(m.cookieName); err == nil {
		return cookie
	}
	return ""
}

func setSession(c *gin.Context, claims *utils.Claims) {
	c.Set(sessionKey, claims)
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
}

// GetSession returns the session attached by Optional or Required, or nil.
func GetSession(c *gin.Context) *utils.Claims {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}

// IsAdmin reports whether the request carries an admin session.
func IsAdmin(c *gin.Context) bool {
	s := GetSession(c)
	return s != nil && s.IsAdmin
}
