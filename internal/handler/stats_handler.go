package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bistro/internal/service"
)

// StatsHandler serves the admin dashboard reports.
type StatsHandler struct {
	svc service.AnalyticsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(svc service.AnalyticsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// AdminStats godoc
// @Summary Dashboard totals
// @Description Counts of menu items, orders and users plus total revenue. Revenue is 0 when there are no payments.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AdminStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin-stats [get]
func (h *StatsHandler) AdminStats(c echo.Context) error {
	stats, err := h.svc.AdminStats(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// OrderStats godoc
// @Summary Orders per category
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CategoryStat
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /order-stats [get]
func (h *StatsHandler) OrderStats(c echo.Context) error {
	stats, err := h.svc.OrderStats(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
