package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bistro/internal/service"
)

// AuthHandler handles session token endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// TokenRequest carries the identity to sign.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// TokenResponse represents an issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// IssueToken godoc
// @Summary Issue a session token
// @Description Signs a one hour token for the given identity. Roles are never embedded.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Identity"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req TokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.IssueToken(req.Email, req.Name)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
