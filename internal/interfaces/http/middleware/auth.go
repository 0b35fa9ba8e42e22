package middleware

import (
	"context"
	"errors"
	"strings"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/interfaces/http/response"
	"gem-auction.backend/pkg/jwt"
	"gem-auction.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// TokenCookie carries the session JWT set at login
	TokenCookie = "token"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
)

// TokenValidator is satisfied by *jwt.JWTService
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// AccountLookup loads the current state of an account
type AccountLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// AuthMiddleware requires a valid JWT from the token cookie or a Bearer header
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return authenticate(validator, nil)
}

// AccountAuthMiddleware is AuthMiddleware plus a per-request account load:
// suspended or deleted accounts are refused before their token expires and
// the role comes from the stored account rather than the claims.
func AccountAuthMiddleware(validator TokenValidator, accounts AccountLookup) gin.HandlerFunc {
	return authenticate(validator, accounts)
}

func authenticate(validator TokenValidator, accounts AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			logger.Debug(c.Request.Context(), "Missing credentials", zap.String("path", c.Request.URL.Path))
			response.Abort(c, domainerrors.Unauthorized("Authentication required"))
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			logger.Debug(c.Request.Context(), "Rejected token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Abort(c, domainerrors.Unauthorized("Token has expired"))
				return
			}
			response.Abort(c, domainerrors.Unauthorized("Invalid token"))
			return
		}

		if accounts != nil {
			user, err := accounts.GetByID(c.Request.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domainerrors.ErrNotFound) {
					response.Abort(c, domainerrors.Unauthorized("Account no longer exists"))
					return
				}
				response.Abort(c, err)
				return
			}
			if !user.IsActive() {
				logger.Info(c.Request.Context(), "Refused inactive account",
					zap.String("userId", user.ID.String()),
					zap.String("status", string(user.Status)),
				)
				response.Abort(c, domainerrors.ErrAccountInactive)
				return
			}
			claims.Role = string(user.Role)
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and lets anonymous requests through untouched.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, err := validator.ValidateToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader(AuthorizationHeader)
	if strings.HasPrefix(header, BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	}
	return ""
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserRoleKey, entities.UserRole(claims.Role))

	ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID.String())
	c.Request = c.Request.WithContext(ctx)
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (entities.UserRole, bool) {
	v, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(entities.UserRole)
	return role, ok
}

// Subject returns the authenticated caller, or the zero Subject
func Subject(c *gin.Context) policy.Subject {
	id, _ := GetUserID(c)
	role, _ := GetUserRole(c)
	return policy.Subject{UserID: id, Role: role}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := Subject(c)
		if subject.UserID == uuid.Nil {
			response.Abort(c, domainerrors.Unauthorized("Authentication required"))
			return
		}
		if policy.Authorize(subject, roles...) == policy.Deny {
			response.Abort(c, domainerrors.Forbidden("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin)
}
