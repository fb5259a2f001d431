package handler

import (
	"marketplace-settlement/internal/middleware"
	"marketplace-settlement/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "order id is required"})
	}

	order, err := h.orderService.GetOrder(ctx, orderID, middleware.Identity(c))
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}
