package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"eliteroadways/internal/domain"
)

const (
	userIDKey     = "user_id"
	userEmailKey  = "user_email"
	capabilityKey = "capability"
)

var (
	jwtMu     sync.RWMutex
	jwtSecret []byte
)

// SetJWTSecret installs the signing key from configuration. Must be called
// before the router starts serving authenticated routes.
func SetJWTSecret(secret []byte) {
	jwtMu.Lock()
	jwtSecret = secret
	jwtMu.Unlock()
}

func secret() []byte {
	jwtMu.RLock()
	defer jwtMu.RUnlock()
	return jwtSecret
}

// IssueToken signs a 24h bearer token for the user. The role claim is the
// stored role string; it is parsed into a capability tag exactly once, in
// RequireAuth.
func IssueToken(u domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(secret())
}

// RequireAuth verifies the bearer token and attaches the requester's id,
// email and capability to the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if !attachRequester(c, raw) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the requester when a valid bearer token is present
// and lets anonymous requests through untouched. Used on public read routes
// that reveal more to administrators.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			attachRequester(c, strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		}
		c.Next()
	}
}

func attachRequester(c *gin.Context, raw string) bool {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return false
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return false
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	c.Set(userIDKey, int64(userID))
	c.Set(userEmailKey, email)
	c.Set(capabilityKey, domain.ParseCapability(role))
	return true
}

// RequireAdmin rejects requests whose capability is not Administrator.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRequester(c).Capability != domain.Administrator {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator capability required"})
			return
		}
		c.Next()
	}
}

// GetRequester reads the authenticated requester from the context.
func GetRequester(c *gin.Context) domain.Requester {
	req := domain.Requester{}
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			req.UserID = id
		}
	}
	if v, ok := c.Get(userEmailKey); ok {
		if email, ok := v.(string); ok {
			req.Email = email
		}
	}
	if v, ok := c.Get(capabilityKey); ok {
		if tag, ok := v.(domain.Capability); ok {
			req.Capability = tag
		}
	}
	return req
}
