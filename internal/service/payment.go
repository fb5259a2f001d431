package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"marketplace-settlement/internal/auth"
	"marketplace-settlement/internal/client"
	"marketplace-settlement/internal/dto"
	"marketplace-settlement/internal/model"
	"marketplace-settlement/internal/repository"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const intentStatusSucceeded = "succeeded"

type PaymentService interface {
	CreateIntent(ctx context.Context, orderID, customerEmail string, identity *auth.Claims) (*dto.IntentResponse, error)
	VerifyPayment(ctx context.Context, orderID string, identity *auth.Claims) (*dto.VerifyResponse, error)
	HandleWebhook(ctx context.Context, signature string, body []byte) error
}

type paymentServiceImpl struct {
	paymentClient    client.PaymentClient
	orderRepo        repository.OrderRepository
	webhookEventRepo repository.WebhookEventRepository
	logger           *zap.Logger
}

func NewPaymentService(
	paymentClient client.PaymentClient,
	orderRepo repository.OrderRepository,
	webhookEventRepo repository.WebhookEventRepository,
	logger *zap.Logger,
) PaymentService {
	return &paymentServiceImpl{
		paymentClient:    paymentClient,
		orderRepo:        orderRepo,
		webhookEventRepo: webhookEventRepo,
		logger:           logger,
	}
}

// CreateIntent checks ownership and order state, then creates a provider
// transaction for the order's stored total and persists the provider's
// intent id. Authorization is fully settled before the provider is
// contacted.
func (s *paymentServiceImpl) CreateIntent(ctx context.Context, orderID, customerEmail string, identity *auth.Claims) (*dto.IntentResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if order.UserID != nil {
		if identity == nil {
			return nil, ErrAuthRequired
		}
		if identity.UserID() != *order.UserID {
			return nil, ErrNotOrderOwner
		}
	} else {
		// guest checkout authenticates by email match
		if customerEmail == "" || !strings.EqualFold(customerEmail, order.CustomerEmail) {
			return nil, ErrNotOrderOwner
		}
	}

	if order.Status != model.OrderStatusPending {
		return nil, ErrOrderNotPending
	}

	intent, err := s.paymentClient.CreateIntent(ctx, &client.CreateIntentParams{
		AmountMinor: minorUnits(order.TotalAmount, order.Currency),
		Currency:    strings.ToLower(order.Currency),
		Metadata: map[string]string{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	// The intent reference is what verification later looks up; losing it
	// orphans the provider transaction, so a failed write fails the call.
	if err := s.orderRepo.SetPaymentIntent(ctx, order.ID, intent.ID); err != nil {
		s.logger.Error("failed to persist payment intent id",
			zap.String("order_id", order.ID),
			zap.String("payment_intent_id", intent.ID),
			zap.Error(err))
		return nil, fmt.Errorf("persist payment intent id: %w", err)
	}

	s.logger.Info("payment intent created",
		zap.String("order_id", order.ID),
		zap.String("payment_intent_id", intent.ID))

	return &dto.IntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// VerifyPayment re-checks the provider transaction and settles the order
// exactly once. An already-paid order short-circuits without a provider
// call.
func (s *paymentServiceImpl) VerifyPayment(ctx context.Context, orderID string, identity *auth.Claims) (*dto.VerifyResponse, error) {
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

	if order.Status == model.OrderStatusPaid {
		return &dto.VerifyResponse{
			Success: true,
			Status:  model.OrderStatusPaid,
			Message: "Order already paid",
		}, nil
	}

	if order.PaymentIntentID == nil {
		return nil, ErrNoPaymentSession
	}

	intent, err := s.paymentClient.GetIntent(ctx, *order.PaymentIntentID)
	if err != nil {
		// provider failure must not be read as "unpaid"; surface it and
		// leave the order untouched
		return nil, fmt.Errorf("retrieve payment intent: %w", err)
	}

	if intent.Status != intentStatusSucceeded {
		return &dto.VerifyResponse{
			Success: false,
			Status:  intent.Status,
			Message: "Payment not completed",
		}, nil
	}

	if err := s.orderRepo.MarkPaid(ctx, order.ID); err != nil {
		s.logger.Error("payment confirmed but order update failed",
			zap.String("order_id", order.ID),
			zap.String("payment_intent_id", *order.PaymentIntentID),
			zap.Error(err))
		return nil, fmt.Errorf("mark order paid: %w", err)
	}

	s.logger.Info("order settled",
		zap.String("order_id", order.ID),
		zap.String("payment_intent_id", *order.PaymentIntentID))

	return &dto.VerifyResponse{
		Success: true,
		Status:  model.OrderStatusPaid,
		Message: "Payment verified",
	}, nil
}

func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, signature string, body []byte) error {
	if err := s.paymentClient.VerifyWebhookSignature(signature, body); err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}

	var event model.ProviderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}

	processed, err := s.webhookEventRepo.Exists(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if processed {
		s.logger.Info("duplicate webhook event ignored", zap.String("event_id", event.ID))
		return nil
	}

	switch event.Type {
	case model.EventPaymentSucceeded:
		if err := s.settleFromWebhook(ctx, &event); err != nil {
			return err
		}
	default:
		s.logger.Info("unhandled webhook event type",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type))
	}

	return s.webhookEventRepo.MarkProcessed(ctx, event.ID, event.Type)
}

func (s *paymentServiceImpl) settleFromWebhook(ctx context.Context, event *model.ProviderEvent) error {
	orderID := event.Data.Object.Metadata["order_id"]

	var order *model.Order
	var err error
	if orderID != "" {
		order, err = s.orderRepo.FindByID(ctx, orderID)
	} else {
		order, err = s.orderRepo.FindByPaymentIntent(ctx, event.Data.Object.ID)
	}
	if err != nil {
		return fmt.Errorf("find order for webhook event %s: %w", event.ID, err)
	}

	if err := s.orderRepo.MarkPaid(ctx, order.ID); err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}

	s.logger.Info("order settled via webhook",
		zap.String("order_id", order.ID),
		zap.String("event_id", event.ID))
	return nil
}
