package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"career-portal-backend/config"
	"career-portal-backend/internal/delivery/http/response"
	"career-portal-backend/internal/domain"
	"career-portal-backend/pkg/auth"
	"career-portal-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the bearer token issued by the auth provider and
// puts the caller on the request context. jwksProvider may be nil when only
// HS256 tokens are in use.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		var opts []jwt.ParserOption
		if cfg.AuthAudience != "" {
			opts = append(opts, jwt.WithAudience(cfg.AuthAudience))
		}
		if cfg.AuthIssuer != "" {
			opts = append(opts, jwt.WithIssuer(cfg.AuthIssuer))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				// HS256 - Use Secret
				if cfg.AuthJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but AUTH_JWT_SECRET is not configured")
				}
				return []byte(cfg.AuthJWTSecret), nil
			}

			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				// RS256 - Use JWKS
				if jwksProvider == nil {
					return nil, fmt.Errorf("RS256 token received but AUTH_JWKS_URL is not configured")
				}
				return jwksProvider.KeyFunc(token)
			}

			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}, opts...)

		if err != nil || !token.Valid {
			logger.Log.Warn("token validation failed", "error", err, "ip", c.ClientIP())
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			// Firebase-style tokens carry user_id as well
			sub, _ = claims["user_id"].(string)
		}
		// The uid becomes a document path segment
		if !domain.ValidSegment(sub) {
			logger.Log.Warn("token subject rejected", "ip", c.ClientIP())
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)

		user := domain.CurrentUser{UID: sub, Email: email, DisplayName: name}
		c.Request = c.Request.WithContext(domain.WithCurrentUser(c.Request.Context(), user))
		c.Set(string(domain.KeyUserID), sub)

		c.Next()
	}
}
