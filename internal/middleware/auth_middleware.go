package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/pkg/apperrors"
	"github.com/cphunt/backend/internal/pkg/auth"
)

// Context keys set by JWTAuth.
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// extractToken pulls the JWT out of the Authorization header, accepting raw
// tokens and the query-parameter forms some clients and Swagger UI produce.
func extractToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		for _, key := range []string{"authorization", "Authorization", "token"} {
			if queryToken := c.Query(key); queryToken != "" {
				authHeader = queryToken
				break
			}
		}
	}
	if authHeader == "" {
		return "", false
	}

	if strings.Count(authHeader, ".") == 2 && !strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader, true
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		authHeader = strings.Trim(authHeader, "\"'")
		switch {
		case strings.HasPrefix(authHeader, "Bearer "):
			return strings.TrimPrefix(authHeader, "Bearer "), true
		case strings.Count(authHeader, ".") == 2:
			return authHeader, true
		default:
			return "", false
		}
	}
	return tokenString, true
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				errorCode = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			} else if errors.Is(err, apperrors.ErrInvalidFormat) {
				details = "Invalid token format"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(details)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// OptionalJWTAuth populates the caller's identity when a valid token is
// present but lets anonymous requests through.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := extractToken(c); ok {
			if claims, err := m.jwtService.ValidateAndExtractClaims(tokenString); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextEmail, claims.Email)
				c.Set(ContextUsername, claims.Username)
				c.Set(ContextRole, claims.Role)
			}
		}
		c.Next()
	}
}

// RoleRequired restricts a route to the given roles.
func (m *AuthMiddleware) RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}
