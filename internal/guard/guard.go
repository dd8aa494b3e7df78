package guard

import (
	"context"
	"errors"
	"fmt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"bistro/internal/auth"
	apperrors "bistro/internal/errors"
	"bistro/internal/model"
)

const claimsKey = "claims"

// tokenLookup accepts the standard header and the one older web clients send.
const tokenLookup = "header:Authorization:Bearer ,header:Authentication:Bearer "

// Check is one step of an authorization pipeline. A non-nil error stops the
// request.
type Check func(c echo.Context) error

// Chain runs checks in order before the handler. The first failing check
// aborts the request with its mapped HTTP status.
func Chain(checks ...Check) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, check := range checks {
				if err := check(c); err != nil {
					httpErr := apperrors.MapErrorToHTTP(err)
					return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
				}
			}
			return next(c)
		}
	}
}

// TokenVerifier verifies session tokens.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// UserLookup resolves the stored user behind an identity.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Guard authenticates requests and enforces stored roles.
type Guard struct {
	tokens     TokenVerifier
	users      UserLookup
	extractors []middleware.ValuesExtractor
}

// New creates a Guard.
func New(tokens TokenVerifier, users UserLookup) *Guard {
	extractors, err := echojwt.CreateExtractors(tokenLookup)
	if err != nil {
		panic(fmt.Sprintf("guard: invalid token lookup: %v", err))
	}
	return &Guard{tokens: tokens, users: users, extractors: extractors}
}

// Authenticate verifies the bearer token and stores its claims on the context.
func (g *Guard) Authenticate(c echo.Context) error {
	var lastErr error
	for _, extract := range g.extractors {
		values, err := extract(c)
		if err != nil {
			continue
		}
		for _, value := range values {
			claims, err := g.tokens.VerifyToken(value)
			if err != nil {
				lastErr = err
				continue
			}
			SetClaims(c, claims)
			return nil
		}
	}
	if lastErr != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, lastErr)
	}
	return apperrors.ErrUnauthenticated
}

// RequireAdmin re-reads the caller's role from storage on every request.
// Must run after Authenticate.
func (g *Guard) RequireAdmin(c echo.Context) error {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return apperrors.ErrUnauthenticated
	}

	user, err := g.users.FindByEmail(c.Request().Context(), claims.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrForbidden
	}
	if err != nil {
		return fmt.Errorf("load user %s: %w", claims.Email, err)
	}
	if !user.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

// Authenticated returns middleware that only requires a valid token.
func (g *Guard) Authenticated() echo.MiddlewareFunc {
	return Chain(g.Authenticate)
}

// Admin returns middleware that requires a valid token and a stored admin role.
func (g *Guard) Admin() echo.MiddlewareFunc {
	return Chain(g.Authenticate, g.RequireAdmin)
}

// SetClaims attaches verified claims to the request context.
func SetClaims(c echo.Context, claims *auth.Claims) {
	c.Set(claimsKey, claims)
}

// ClaimsFrom returns the claims stored by Authenticate.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// EnsureSelf fails with ErrForbidden unless email is the caller's own.
func EnsureSelf(c echo.Context, email string) error {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	if email != claims.Email {
		return apperrors.ErrForbidden
	}
	return nil
}
