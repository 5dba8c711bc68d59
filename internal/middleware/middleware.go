package middleware

import (
	"errors"
	"net/http"

	"taskboard/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// TokenVerifier is satisfied by *service.TokenService.
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

func extractClaims(c echo.Context, verifier TokenVerifier, cookieName string) (*service.Claims, error) {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, err := verifier.Verify(cookie.Value)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, service.ErrTokenExpired):
		return nil, echo.NewHTTPError(http.StatusForbidden, "token expired")
	default:
		return nil, echo.NewHTTPError(http.StatusForbidden, "invalid token")
	}
}

// RequireAuth 從 cookie 取出令牌並驗證，成功後把 claims 放進 context
// 不查資料庫，身分完全來自令牌內容
func RequireAuth(verifier TokenVerifier, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, verifier, cookieName)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// CallerFrom returns the claims stored by RequireAuth, or nil.
func CallerFrom(c echo.Context) *service.Claims {
	claims, _ := c.Get(ContextUserKey).(*service.Claims)
	return claims
}
