package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bistro/internal/model"
	"bistro/internal/service"
)

// MenuHandler handles menu endpoints.
type MenuHandler struct {
	svc service.MenuService
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(svc service.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// MenuItemRequest is the payload for creating a menu item.
type MenuItemRequest struct {
	Name     string          `json:"name" validate:"required"`
	Recipe   string          `json:"recipe"`
	Image    string          `json:"image"`
	Category string          `json:"category" validate:"required"`
	Price    decimal.Decimal `json:"price" swaggertype:"number"`
}

// ListMenu godoc
// @Summary List menu items
// @Description Newest first, optionally filtered by category.
// @Tags menu
// @Produce json
// @Param category query string false "Category"
// @Success 200 {array} model.MenuItem
// @Failure 500 {object} errors.ErrorResponse
// @Router /menu [get]
func (h *MenuHandler) ListMenu(c echo.Context) error {
	items, err := h.svc.ListMenu(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetMenuItem godoc
// @Summary Get menu item by id
// @Tags menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} model.MenuItem
// @Failure 404 {object} errors.ErrorResponse
// @Router /menu/{id} [get]
func (h *MenuHandler) GetMenuItem(c echo.Context) error {
	item, err := h.svc.GetMenuItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// CreateMenuItem godoc
// @Summary Create a menu item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body MenuItemRequest true "Menu item"
// @Success 201 {object} model.InsertResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /menu [post]
func (h *MenuHandler) CreateMenuItem(c echo.Context) error {
	var req MenuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.svc.CreateMenuItem(c.Request().Context(), &model.MenuItem{
		Name:     req.Name,
		Recipe:   req.Recipe,
		Image:    req.Image,
		Category: req.Category,
		Price:    req.Price,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

// UpdateMenuItem godoc
// @Summary Update a menu item
// @Description Only the fields present in the body are written.
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Param patch body model.MenuItemPatch true "Fields to change"
// @Success 200 {object} model.UpdateResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /menu/{id} [patch]
func (h *MenuHandler) UpdateMenuItem(c echo.Context) error {
	var patch model.MenuItemPatch
	if err := bindAndValidate(c, &patch); err != nil {
		return err
	}

	result, err := h.svc.UpdateMenuItem(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteMenuItem godoc
// @Summary Delete a menu item
// @Tags menu
// @Produce json
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Success 200 {object} model.DeleteResult
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /menu/{id} [delete]
func (h *MenuHandler) DeleteMenuItem(c echo.Context) error {
	result, err := h.svc.DeleteMenuItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}
