package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"bistro/internal/config"
	"bistro/internal/guard"
	"bistro/internal/handler"
	"bistro/internal/logger"
)

// Banner is the body of GET /.
const Banner = "bistro boss server is running"

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Menu    *handler.MenuHandler
	Review  *handler.ReviewHandler
	Cart    *handler.CartHandler
	Payment *handler.PaymentHandler
	Stats   *handler.StatsHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log *zap.Logger, g *guard.Guard, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"Authentication",
		},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	authenticated := g.Authenticated()
	admin := g.Admin()

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, Banner)
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/jwt", h.Auth.IssueToken)

	// Users
	e.POST("/users", h.User.CreateUser)
	e.GET("/users", h.User.ListUsers, admin)
	e.PATCH("/users", h.User.PromoteUser, admin)
	e.DELETE("/users", h.User.DeleteUser, admin)
	e.GET("/users/admin", h.User.CheckAdmin, authenticated)

	// Menu
	e.GET("/menu", h.Menu.ListMenu)
	e.GET("/menu/:id", h.Menu.GetMenuItem)
	e.POST("/menu", h.Menu.CreateMenuItem, admin)
	e.PATCH("/menu/:id", h.Menu.UpdateMenuItem, admin)
	e.DELETE("/menu/:id", h.Menu.DeleteMenuItem, admin)

	e.GET("/reviews", h.Review.ListReviews)

	// Carts
	e.GET("/carts", h.Cart.ListCart)
	e.POST("/carts", h.Cart.AddToCart, authenticated)
	e.DELETE("/carts/:id", h.Cart.RemoveFromCart, authenticated)

	// Checkout
	e.POST("/create-payment-intent", h.Payment.CreatePaymentIntent, authenticated)
	e.GET("/payments", h.Payment.ListPayments, authenticated)
	e.POST("/payments", h.Payment.RecordPayment, authenticated)

	// Dashboard
	e.GET("/admin-stats", h.Stats.AdminStats, admin)
	e.GET("/order-stats", h.Stats.OrderStats, admin)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
