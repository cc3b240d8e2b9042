package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/qforge/qforge-backend/internal/response"
	"github.com/qforge/qforge-backend/internal/service"
)

const claimsContextKey = "claims"

// RequireTeacherJWT authenticates requests either from the Authorization
// header or, for browser WebSocket clients that cannot set headers, from a
// "token" query parameter.
func RequireTeacherJWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Fail(c, http.StatusUnauthorized, response.ErrTokenExpired)
			} else {
				response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			}
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// CheckActiveSession rejects tokens whose JTI no longer matches the stored
// session, which happens after a logout or a login from another device.
func CheckActiveSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			c.Abort()
			return
		}

		if err := authService.ValidateSession(c.Request.Context(), claims.TeacherID, claims.ID); err != nil {
			response.Fail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetClaims returns the authenticated teacher's claims, or nil when the
// request did not pass through RequireTeacherJWT.
func GetClaims(c *gin.Context) *service.Claims {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
