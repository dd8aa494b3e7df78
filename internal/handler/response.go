package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bistro/internal/auth"
	"bistro/internal/errors"
	"bistro/internal/guard"
)

// respondError converts a service error into an echo error with a JSON body.
func respondError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: message})
}

// bindAndValidate binds the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error())
	}
	return nil
}

// callerClaims returns the claims of an authenticated request.
func callerClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := guard.ClaimsFrom(c)
	if !ok {
		return nil, respondError(errors.ErrUnauthenticated)
	}
	return claims, nil
}
