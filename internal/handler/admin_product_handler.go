package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /admin/products と /admin/inventory のHTTP
type AdminProductHandler struct {
	uc *usecase.AdminCatalogUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.AdminCatalogUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type AdminSaveProductRequest struct {
	Name          string              `json:"name"`
	Slug          string              `json:"slug"`
	Category      string              `json:"category"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discount_price"`
	Stock         int64               `json:"stock"`
	Colors        model.StringList    `json:"colors"`
	Sizes         model.StringList    `json:"sizes"`
	IsActive      bool                `json:"is_active"`
	IsFeatured    bool                `json:"is_featured"`
	IsNew         bool                `json:"is_new"`
}

type AdminSetStockRequest struct {
	Stock int64 `json:"stock"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("/products", h.create)
	admin.PUT("/products/:id", h.update)
	admin.DELETE("/products/:id", h.delete)
	admin.PUT("/inventory/:productID", h.setStock)
}

func (req AdminSaveProductRequest) toInput() usecase.AdminSaveProductInput {
	return usecase.AdminSaveProductInput{
		Name:          req.Name,
		Slug:          req.Slug,
		CategorySlug:  req.Category,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Stock:         req.Stock,
		Colors:        req.Colors,
		Sizes:         req.Sizes,
		IsActive:      req.IsActive,
		IsFeatured:    req.IsFeatured,
		IsNew:         req.IsNew,
	}
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req AdminSaveProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminSaveProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateProduct(c.Request().Context(), id, req.toInput()); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminProductHandler) setStock(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminSetStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.SetStock(c.Request().Context(), productID, req.Stock); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
