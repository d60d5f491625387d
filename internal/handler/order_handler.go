package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /orders（本人の注文履歴）と /admin/orders（管理）のHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type AdminUpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type AdminMarkPaidRequest struct {
	IsPaid bool `json:"is_paid"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.GET("/:id", h.detail)

	a := e.Group("/admin/orders")
	a.Use(middleware.AuthJWT(cfg))
	a.Use(middleware.AdminRoleGuard())

	a.GET("", h.adminList)
	a.PATCH("/:id/status", h.adminUpdateStatus)
	a.PATCH("/:id/paid", h.adminMarkPaid)
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	userID, ok := v.(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type AdminOrderListResponse struct {
	Items []usecase.OrderOutput `json:"items"`
	Total int64                 `json:"total"`
}

func (h *OrderHandler) adminList(c echo.Context) error {
	in := usecase.AdminOrderListInput{
		Status: c.QueryParam("status"),
	}
	if v := c.QueryParam("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		in.Page = page
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		in.Limit = limit
	}

	items, total, err := h.uc.AdminListOrders(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, AdminOrderListResponse{Items: items, Total: total})
}

func (h *OrderHandler) adminUpdateStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminUpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdminUpdateStatus(c.Request().Context(), orderID, req.Status); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) adminMarkPaid(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminMarkPaidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdminMarkPaid(c.Request().Context(), orderID, req.IsPaid); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
