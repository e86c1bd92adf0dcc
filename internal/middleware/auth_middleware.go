package middleware

import (
	"context"
	"strings"

	"aptilab/internal/domain"
	"aptilab/internal/dto"
	"aptilab/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID"
	UserEmailKey        = "userEmail"
)

// TokenValidator is the part of service.AuthService the middleware needs.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(AuthorizationHeader)
	if authHeader == "" {
		return "", domain.NewUnauthorizedError("Authorization header is missing")
	}
	if !strings.HasPrefix(authHeader, BearerSchema) {
		return "", domain.NewUnauthorizedError("Authorization scheme is not Bearer")
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
	if token == "" {
		return "", domain.NewUnauthorizedError("Token is empty")
	}
	return token, nil
}

// Protected requires a valid access token and stores the user id and email in locals.
func Protected(auth TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}
		claims, err := auth.ValidateJWT(c.UserContext(), token)
		if err != nil {
			return domain.NewError(domain.CodeUnauthorized, "Invalid or expired token", err)
		}
		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UserEmailKey, claims.Email)
		return c.Next()
	}
}

// OptionalAuth sets the same locals as Protected when a valid token is present
// and lets anonymous requests through otherwise.
func OptionalAuth(auth TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if auth == nil || c.Get(AuthorizationHeader) == "" {
			return c.Next()
		}
		token, err := bearerToken(c)
		if err != nil {
			return c.Next()
		}
		claims, err := auth.ValidateJWT(c.UserContext(), token)
		if err != nil {
			logger.Get().Debug("OptionalAuth: token rejected, proceeding as anonymous", zap.Error(err))
			return c.Next()
		}
		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UserEmailKey, claims.Email)
		return c.Next()
	}
}

// UserEmailFrom returns the email of the authenticated caller, if any.
func UserEmailFrom(c *fiber.Ctx) string {
	email, _ := c.Locals(UserEmailKey).(string)
	return email
}
