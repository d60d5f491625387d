package server

import (
	"app/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Promo.RegisterRoutes(e, cfg)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Contact.RegisterRoutes(e)
}
