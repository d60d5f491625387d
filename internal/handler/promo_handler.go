package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cart/promo のHTTP
type PromoHandler struct {
	uc *usecase.PromoUsecase
}

// DI
func NewPromoHandler(uc *usecase.PromoUsecase) *PromoHandler {
	return &PromoHandler{uc: uc}
}

type ApplyPromoRequest struct {
	Code string `json:"code"`
}

func (h *PromoHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart/promo")
	g.Use(middleware.EnsureSession())
	g.Use(middleware.OptionalAuthJWT(cfg))

	g.POST("", h.apply)
	g.DELETE("", h.clear)
}

func (h *PromoHandler) apply(c echo.Context) error {
	owner, ok := middleware.OwnerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ApplyPromoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Apply(c.Request().Context(), owner, req.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PromoHandler) clear(c echo.Context) error {
	owner, ok := middleware.OwnerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Clear(c.Request().Context(), owner)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
