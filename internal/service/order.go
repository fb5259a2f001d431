package service

import (
	"context"
	"errors"
	"fmt"
	"marketplace-settlement/internal/auth"
	"marketplace-settlement/internal/dto"
	"marketplace-settlement/internal/model"
	"marketplace-settlement/internal/repository"

	"gorm.io/gorm"
)

type OrderService interface {
	GetOrder(ctx context.Context, orderID string, identity *auth.Claims) (*dto.OrderResponse, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{orderRepo: orderRepo}
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID string, identity *auth.Claims) (*dto.OrderResponse, error) {
	if identity == nil {
		return nil, ErrAuthRequired
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if !identity.IsAdmin() {
		if order.UserID == nil || *order.UserID != identity.UserID() {
			return nil, ErrNotOrderOwner
		}
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	return toOrderResponse(order, items), nil
}

func toOrderResponse(order *model.Order, items []*model.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerEmail: order.CustomerEmail,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		TotalAmount:   order.TotalAmount.InexactFloat64(),
		Currency:      order.Currency,
		PaidAt:        order.PaidAt,
		Items:         make([]dto.OrderItemResponse, len(items)),
	}
	if order.TotalCommission.Valid {
		total := order.TotalCommission.Decimal.InexactFloat64()
		resp.TotalCommission = &total
	}

	for i, item := range items {
		ir := dto.OrderItemResponse{
			ID:               item.ID,
			ListingID:        item.ListingID,
			ListingType:      item.ListingType,
			Title:            item.Title,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice.InexactFloat64(),
			TotalPrice:       item.TotalPrice.InexactFloat64(),
			SellerID:         item.SellerID,
			CommissionSource: item.CommissionSource,
		}
		if item.CommissionRate.Valid {
			rate := item.CommissionRate.Decimal.InexactFloat64()
			ir.CommissionRate = &rate
		}
		if item.CommissionAmount.Valid {
			amount := item.CommissionAmount.Decimal.InexactFloat64()
			ir.CommissionAmount = &amount
		}
		resp.Items[i] = ir
	}

	return resp
}
