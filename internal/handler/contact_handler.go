package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /contact のHTTP
type ContactHandler struct {
	uc *usecase.ContactUsecase
}

// DI
func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *ContactHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/contact", h.send)
}

func (h *ContactHandler) send(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.uc.SendMessage(c.Request().Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
