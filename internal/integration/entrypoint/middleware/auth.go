// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/entity"
	domainerror "github.com/brokerdash/backend/internal/domain/error"
	"github.com/brokerdash/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user's report configuration.
	UserContextKey ContextKey = "user_context"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
	userRepo     adapter.UserRepository
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService, userRepo adapter.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication
// and loads the user context every report is computed for.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.resolveUser(c)
		if err != nil {
			var authErr *domainerror.AuthError
			if !errors.As(err, &authErr) {
				slog.Error("Failed to load authenticated user", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error: "An internal error occurred",
				})
				return
			}
			c.AbortWithStatusJSON(authStatus(authErr.Code), dto.ErrorResponse{
				Error: authErr.Message,
				Code:  string(authErr.Code),
			})
			return
		}

		c.Set(string(UserContextKey), user)
		c.Next()
	}
}

// resolveUser validates the bearer token and loads its user. Rejections are
// returned as *domainerror.AuthError; anything else is an internal failure.
func (m *AuthMiddleware) resolveUser(c *gin.Context) (*entity.UserContext, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeMissingToken, "Authorization header is required", domainerror.ErrMissingToken)
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "Invalid authorization header format", domainerror.ErrInvalidToken)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeMissingToken, "Token is required", domainerror.ErrMissingToken)
	}

	claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpiredToken) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, "Token has expired", err)
		}
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "Invalid or expired token", err)
	}

	user, err := m.userRepo.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "User not found", err)
		}
		return nil, fmt.Errorf("failed to load user %s: %w", claims.UserID, err)
	}

	if !user.Role.Valid() {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidRole, "User has no dashboard role", domainerror.ErrInvalidRole)
	}
	return user, nil
}

func authStatus(code domainerror.AuthErrorCode) int {
	if code == domainerror.ErrCodeInvalidRole {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

// GetUserContext extracts the authenticated user's context from the Gin context.
func GetUserContext(c *gin.Context) (*entity.UserContext, bool) {
	value, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil, false
	}
	user, ok := value.(*entity.UserContext)
	return user, ok && user != nil
}
