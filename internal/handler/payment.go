package handler

import (
	"io"
	"marketplace-settlement/internal/dto"
	"marketplace-settlement/internal/middleware"
	"marketplace-settlement/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const signatureHeader = "X-Provider-Signature"

type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.OrderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "order_id is required"})
	}

	result, err := h.paymentService.CreateIntent(ctx, req.OrderID, req.CustomerEmail, middleware.Identity(c))
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.OrderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "order_id is required"})
	}

	result, err := h.paymentService.VerifyPayment(ctx, req.OrderID, middleware.Identity(c))
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) ProviderWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	err = h.paymentService.HandleWebhook(ctx, c.Request().Header.Get(signatureHeader), body)
	if err != nil {
		h.logger.Error("webhook processing failed", zap.Error(err))
		return c.NoContent(http.StatusBadRequest)
	}

	return c.NoContent(http.StatusOK)
}
