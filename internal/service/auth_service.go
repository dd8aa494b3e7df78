package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"bistro/internal/auth"
	apperrors "bistro/internal/errors"
)

// AuthService issues session tokens. Tokens carry identity only; roles are
// always read from storage.
type AuthService interface {
	IssueToken(email, name string) (string, error)
}

type authService struct {
	jwtService *auth.JWTService
	validate   *validator.Validate
}

// NewAuthService creates a new authentication service.
func NewAuthService(jwtService *auth.JWTService) AuthService {
	return &authService{
		jwtService: jwtService,
		validate:   validator.New(),
	}
}

// IssueToken signs a one hour session token for the given identity.
func (s *authService) IssueToken(email, name string) (string, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%w: a valid email is required", apperrors.ErrInvalidInput)
	}
	token, err := s.jwtService.IssueToken(email, name)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
