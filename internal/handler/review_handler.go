package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bistro/internal/service"
)

// ReviewHandler serves customer reviews.
type ReviewHandler struct {
	svc service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// ListReviews godoc
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Success 200 {array} model.Review
// @Failure 500 {object} errors.ErrorResponse
// @Router /reviews [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	reviews, err := h.svc.ListReviews(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}
