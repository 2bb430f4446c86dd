package security

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser      = 1
	RoleModerator = 2
	RoleAdmin     = 3
)

var roleHierarchy = map[string]int{
	"user":      RoleUser,
	"moderator": RoleModerator,
	"admin":     RoleAdmin,
}

// JWTMiddleware validates the bearer token and stores the authenticated
// Account on the context. Tokens carrying a role outside the hierarchy are
// rejected outright rather than deferred to per-route checks.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		claims := &Claims{}
		_, err := jwt.ParseWithClaims(
			strings.TrimPrefix(authHeader, "Bearer "),
			claims,
			func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
				}
				return jwtSecret, nil
			},
		)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if _, known := roleHierarchy[claims.Role]; !known {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown role"})
			return
		}

		c.Set("account", &Account{Username: claims.Username, Role: claims.Role})
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// Authorize lets the request through when the authenticated role sits at
// or above the required one in the hierarchy.
func Authorize(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userLevel, ok := roleHierarchy[c.GetString("role")]
		requiredLevel, known := roleHierarchy[requiredRole]

		if !ok || !known || userLevel < requiredLevel {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			return
		}

		c.Next()
	}
}
