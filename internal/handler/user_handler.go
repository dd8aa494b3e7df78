package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "bistro/internal/errors"
	"bistro/internal/guard"
	"bistro/internal/model"
	"bistro/internal/service"
)

// UserHandler handles user and role administration.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest is the signup payload. Any role sent by the client is ignored.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photoURL"`
}

// AdminStatusResponse reports whether the caller is an admin.
type AdminStatusResponse struct {
	Admin bool `json:"admin"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary Sign up a user
// @Description Idempotent by email. An existing email returns 200 with a message and stores nothing.
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User payload"
// @Success 200 {object} errors.ErrorResponse
// @Success 201 {object} model.InsertResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.svc.CreateUser(c.Request().Context(), &model.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
	})
	if errors.Is(err, service.ErrUserAlreadyExists) {
		return c.JSON(http.StatusOK, apperrors.ErrorResponse{Message: err.Error()})
	}
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

// PromoteUser godoc
// @Summary Promote a user to admin
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email query string true "User email"
// @Success 200 {object} model.UpdateResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [patch]
func (h *UserHandler) PromoteUser(c echo.Context) error {
	result, err := h.svc.PromoteToAdmin(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email query string true "User email"
// @Success 200 {object} model.DeleteResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	result, err := h.svc.DeleteUser(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// CheckAdmin godoc
// @Summary Check the caller's admin status
// @Description Only the caller's own email may be queried.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email query string true "Caller email"
// @Success 200 {object} AdminStatusResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/admin [get]
func (h *UserHandler) CheckAdmin(c echo.Context) error {
	email := c.QueryParam("email")
	if err := guard.EnsureSelf(c, email); err != nil {
		return respondError(err)
	}

	isAdmin, err := h.svc.IsAdmin(c.Request().Context(), email)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, AdminStatusResponse{Admin: isAdmin})
}
