package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bistro/internal/errors"
	"bistro/internal/model"
	"bistro/internal/service"
)

// CartHandler handles cart endpoints.
type CartHandler struct {
	svc service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(svc service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

// CartRequest adds one menu item to the caller's cart.
type CartRequest struct {
	MenuItemID string          `json:"menuId" validate:"required"`
	Email      string          `json:"email" validate:"omitempty,email"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Price      decimal.Decimal `json:"price" swaggertype:"number"`
}

// ListCart godoc
// @Summary List cart entries of a user
// @Description Without an email the result is an empty list.
// @Tags carts
// @Produce json
// @Param email query string false "Owner email"
// @Success 200 {array} model.CartEntry
// @Failure 500 {object} errors.ErrorResponse
// @Router /carts [get]
func (h *CartHandler) ListCart(c echo.Context) error {
	entries, err := h.svc.ListCart(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// AddToCart godoc
// @Summary Add an item to the caller's cart
// @Tags carts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body CartRequest true "Cart entry"
// @Success 201 {object} model.InsertResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /carts [post]
func (h *CartHandler) AddToCart(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	var req CartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Email == "" {
		req.Email = claims.Email
	}
	if req.Email != claims.Email {
		return respondError(errors.ErrForbidden)
	}

	result, err := h.svc.AddToCart(c.Request().Context(), &model.CartEntry{
		Email:      req.Email,
		MenuItemID: req.MenuItemID,
		Name:       req.Name,
		Image:      req.Image,
		Price:      req.Price,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

// RemoveFromCart godoc
// @Summary Remove an entry from the caller's cart
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart entry ID"
// @Success 200 {object} model.DeleteResult
// @Failure 401 {object} errors.ErrorResponse
// @Router /carts/{id} [delete]
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	result, err := h.svc.RemoveFromCart(c.Request().Context(), c.Param("id"), claims.Email)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}
