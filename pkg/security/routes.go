package security

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inventory/internal/ratelimit"
)

// LoginHandler serves the token endpoint. Attempts are rate-limited per
// client so the bcrypt comparison cannot be brute-forced.
type LoginHandler struct {
	limiter *ratelimit.Limiter
}

func NewLoginHandler(limiter *ratelimit.Limiter) *LoginHandler {
	return &LoginHandler{limiter: limiter}
}

func (l *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth", l.LoginHandler())
}

func (l *LoginHandler) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := clientKey(c)
		allowed, remaining := l.limiter.Allow(key)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.Header("X-RateLimit-Reset", time.Now().Add(l.limiter.Window()).Format(time.RFC3339))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many login attempts, try again later",
			})
			return
		}

		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		account, err := AuthenticateUser(req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		token, err := GenerateJWT(account)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// clientKey identifies the caller for rate limiting. Behind a private or
// loopback address every caller shares one IP, so the user agent is mixed
// in to keep the buckets apart.
func clientKey(c *gin.Context) string {
	ip := c.ClientIP()
	if parsed := net.ParseIP(ip); parsed != nil && (parsed.IsPrivate() || parsed.IsLoopback()) {
		return ip + ":" + c.GetHeader("User-Agent")
	}
	return ip
}
