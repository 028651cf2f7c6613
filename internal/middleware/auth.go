package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"thumbnail-backend/internal/config"
	"thumbnail-backend/internal/models"
)

const UserIDKey = "user_id"

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header", "")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization header format", "")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			abortUnauthorized(c, "empty token", "")
			return
		}

		// Some clients URL-encode the token
		if decoded, err := url.QueryUnescape(tokenString); err == nil {
			tokenString = decoded
		}

		if strings.Count(tokenString, ".") != 2 {
			abortUnauthorized(c, "invalid token format", "JWT token must have 3 parts separated by dots")
			return
		}

		// Supabase signs access tokens with HS256 using the project JWT secret
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			if cfg.SupabaseJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			var msg string
			switch {
			case strings.Contains(err.Error(), "signature is invalid"):
				msg = "token signature is invalid - check JWT secret"
			case strings.Contains(err.Error(), "token is expired"):
				msg = "token has expired"
			case strings.Contains(err.Error(), "could not JSON decode"):
				msg = "token is malformed - ensure you're using a valid Supabase JWT token"
			default:
				msg = err.Error()
			}
			abortUnauthorized(c, "invalid token", msg)
			return
		}

		if !token.Valid {
			abortUnauthorized(c, "invalid token", "")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid token claims", "")
			return
		}

		// Extract user_id from "sub" claim
		sub, ok := claims["sub"].(string)
		if !ok {
			abortUnauthorized(c, "missing user id in token", "")
			return
		}

		userID, err := uuid.Parse(sub)
		if err != nil {
			abortUnauthorized(c, "invalid user id in token", "")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user set by AuthMiddleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context, errMsg, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: errMsg, Message: message})
}
