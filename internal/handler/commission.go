package handler

import (
	"errors"
	"marketplace-settlement/internal/dto"
	"marketplace-settlement/internal/middleware"
	"marketplace-settlement/internal/model"
	"marketplace-settlement/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CommissionHandler struct {
	commissionService service.CommissionService
	logger            *zap.Logger
}

func NewCommissionHandler(commissionService service.CommissionService, logger *zap.Logger) *CommissionHandler {
	return &CommissionHandler{
		commissionService: commissionService,
		logger:            logger,
	}
}

// requireAdmin writes the rejection response itself so the 401/403 bodies
// match the {"error": ...} shape of every other error path.
func requireAdmin(c echo.Context) (bool, error) {
	identity := middleware.Identity(c)
	if identity == nil {
		return false, c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
	if !identity.IsAdmin() {
		return false, c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
	}
	return true, nil
}

func (h *CommissionHandler) Calculate(c echo.Context) error {
	ctx := c.Request().Context()

	if ok, err := requireAdmin(c); !ok {
		return err
	}

	var req dto.CalculateCommissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if req.OrderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "orderId is required",
		})
	}

	result, err := h.commissionService.Calculate(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"success": false,
				"error":   err.Error(),
			})
		}
		h.logger.Error("commission calculation failed",
			zap.String("order_id", req.OrderID),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "commission calculation failed",
		})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CommissionHandler) ListRules(c echo.Context) error {
	ctx := c.Request().Context()

	if ok, err := requireAdmin(c); !ok {
		return err
	}

	rules, err := h.commissionService.ListRules(ctx)
	if err != nil {
		return jsonError(c, err)
	}

	resp := make([]dto.RuleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = toRuleResponse(rule)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CommissionHandler) CreateRule(c echo.Context) error {
	ctx := c.Request().Context()

	if ok, err := requireAdmin(c); !ok {
		return err
	}

	var req dto.RuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	rule, err := h.commissionService.CreateRule(ctx, &req)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, toRuleResponse(rule))
}

func (h *CommissionHandler) UpdateRule(c echo.Context) error {
	ctx := c.Request().Context()

	if ok, err := requireAdmin(c); !ok {
		return err
	}

	var req dto.RuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	rule, err := h.commissionService.UpdateRule(ctx, c.Param("id"), &req)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, toRuleResponse(rule))
}

func toRuleResponse(rule *model.CommissionRule) dto.RuleResponse {
	return dto.RuleResponse{
		ID:          rule.ID,
		RuleType:    rule.RuleType,
		ReferenceID: rule.ReferenceID,
		Rate:        rule.Rate.InexactFloat64(),
		IsActive:    rule.IsActive,
		Description: rule.Description,
	}
}
