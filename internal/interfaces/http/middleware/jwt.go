package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// JWTMiddlewareConfig holds the configuration for JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths lists exact paths that bypass authentication
	SkipPaths []string
	// SkipPathPrefixes lists path prefixes that bypass authentication
	SkipPathPrefixes []string
	// Logger for authentication failures
	Logger *zap.Logger
}

// JWTAuth returns a middleware that validates JWT tokens and stores the
// claims in the request context. Requests without a valid token are
// rejected unless their path is skipped.
func JWTAuth(config JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, p := range config.SkipPaths {
			if path == p {
				c.Next()
				return
			}
		}
		for _, prefix := range config.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		claims, err := authenticate(c, config.JWTService)
		if err != nil {
			handleAuthError(c, err, config.Logger)
			return
		}

		setAuthContext(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth returns a middleware that parses a Bearer token when one
// is present but lets anonymous requests through. Handlers decide whether
// an account is required. A malformed or expired token is still rejected
// so clients never silently fall back to anonymous behavior.
func OptionalJWTAuth(jwtService *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		claims, err := authenticate(c, jwtService)
		if err != nil {
			handleAuthError(c, err, logger)
			return
		}

		setAuthContext(c, claims)
		c.Next()
	}
}

// RequireOperator returns a middleware that rejects requests whose
// authenticated role is not operator. It must run after JWTAuth.
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetJWTClaims(c)
		if !ok || !claims.IsOperator() {
			requestID := c.GetString("request_id")
			resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "operator role required", requestID)
			c.JSON(http.StatusForbidden, resp)
			c.Abort()
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, errors.New("invalid authorization header format")
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return nil, errors.New("empty bearer token")
	}

	return jwtService.ValidateToken(token)
}

func setAuthContext(c *gin.Context, claims *auth.Claims) {
	c.Set("jwt_claims", claims)
	c.Set("jwt_account_id", claims.AccountID)
	c.Set("jwt_role", claims.Role)
}

func handleAuthError(c *gin.Context, err error, logger *zap.Logger) {
	if logger != nil {
		logger.Debug("authentication failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}

	code := dto.ErrCodeUnauthorized
	message := "authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		message = "token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		message = "token is not yet valid"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrMissingAccountID):
		message = "invalid token"
	}

	requestID := c.GetString("request_id")
	resp := dto.NewErrorResponseWithRequestID(code, message, requestID)
	c.JSON(http.StatusUnauthorized, resp)
	c.Abort()
}

// GetJWTClaims retrieves the JWT claims from the gin context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get("jwt_claims")
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// GetJWTAccountID retrieves the authenticated account ID from the gin
// context. Returns false for anonymous requests.
func GetJWTAccountID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := GetJWTClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := claims.ParsedAccountID()
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetJWTRole retrieves the authenticated role from the gin context
func GetJWTRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("jwt_role")
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
