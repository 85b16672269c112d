package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/affordablebilliards/billiards_api/internal/config"
	"github.com/affordablebilliards/billiards_api/internal/middleware"
	"github.com/affordablebilliards/billiards_api/internal/service"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	session     config.SessionConfig
}

func NewAuthHandler(authService *service.AuthService, session config.SessionConfig) *AuthHandler {
	if session.CookieName == "" {
		session.CookieName = "session"
	}
	return &AuthHandler{authService: authService, session: session}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	sess, err := h.authService.Login(c.Request.Context(), c.ClientIP(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	h.setCookie(c, sess.Token, time.Until(sess.ExpiresAt))
	utils.Success(c, 200, "Login successful", gin.H{
		"token":     sess.Token,
		"expiresAt": utils.FormatISO(sess.ExpiresAt),
		"user":      sess.User,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -time.Second)
	utils.Success(c, 200, "Logged out", nil)
}

// Session handles GET /api/auth/session
// It returns the current session or null when signed out.
func (h *AuthHandler) Session(c *gin.Context) {
	s := middleware.GetSession(c)
	if s == nil {
		utils.Success(c, 200, "No active session", nil)
		return
	}
	var expires string
	if s.ExpiresAt != nil {
		expires = utils.FormatISO(s.ExpiresAt.Time)
	}
	utils.Success(c, 200, "Session active", gin.H{
		"user": gin.H{
			"id":      s.UserID,
			"email":   s.Email,
			"name":    s.Name,
			"isAdmin": s.IsAdmin,
		},
		"expires": expires,
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, value, maxAge, "/", "", h.session.CookieSecure, true)
}
