package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkout のHTTP。ゲストでも注文できる。
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type PlaceOrderRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	DeliveryMethod string `json:"delivery_method"`
	City           string `json:"city"`
	Address        string `json:"address"`
	PostalCode     string `json:"postal_code"`
	DeliveryTime   string `json:"delivery_time"`
	PaymentMethod  string `json:"payment_method"`
	Notes          string `json:"notes"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/checkout")
	g.Use(middleware.EnsureSession())
	g.Use(middleware.OptionalAuthJWT(cfg))

	g.POST("", h.placeOrder)
}

func (h *CheckoutHandler) placeOrder(c echo.Context) error {
	owner, ok := middleware.OwnerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), owner, usecase.PlaceOrderInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		DeliveryMethod: req.DeliveryMethod,
		City:           req.City,
		Address:        req.Address,
		PostalCode:     req.PostalCode,
		DeliveryTime:   req.DeliveryTime,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
