package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ecotrade/marketplace/internal/auth"
	"github.com/labstack/echo/v4"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

// errBody mirrors the handler package's error envelope; importing it here
// would cycle, handlers read the context keys this package sets.
func errBody(code, message string) echo.Map {
	return echo.Map{"error": echo.Map{"code": code, "message": message}}
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, errBody("unauthorized", "missing bearer token"))
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")
		userID, email, err := auth.Parse(m.secret, tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, errBody("token_expired", "token has expired"))
			}
			return c.JSON(http.StatusUnauthorized, errBody("invalid_token", "invalid token"))
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextEmail, email)
		return next(c)
	}
}
