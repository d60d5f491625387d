package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Cart         *handler.CartHandler
	Promo        *handler.PromoHandler
	Checkout     *handler.CheckoutHandler
	Order        *handler.OrderHandler
	Contact      *handler.ContactHandler
}

func Start(addr string, cfg config.Config, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	RegisterRoutes(e, cfg, h)

	return e.Start(addr)
}
