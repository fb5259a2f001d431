package service

import (
	"context"
	"errors"
	"fmt"
	"marketplace-settlement/internal/cache"
	"marketplace-settlement/internal/dto"
	"marketplace-settlement/internal/model"
	"marketplace-settlement/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fallbackRate guarantees commission is never silently zero when no rule
// matches an item at any level.
var fallbackRate = decimal.NewFromInt(10)

const (
	SourceItem        = "item"
	SourceProductType = "product_type"
	SourceSeller      = "seller"
	SourceEvent       = "event"
	SourceCategory    = "category"
	SourceDefault     = "default"
	SourceFallback    = "fallback"
)

type CommissionService interface {
	Calculate(ctx context.Context, orderID string) (*dto.CommissionResult, error)
	ListRules(ctx context.Context) ([]*model.CommissionRule, error)
	CreateRule(ctx context.Context, req *dto.RuleRequest) (*model.CommissionRule, error)
	UpdateRule(ctx context.Context, id string, req *dto.RuleRequest) (*model.CommissionRule, error)
}

type commissionServiceImpl struct {
	orderRepo   repository.OrderRepository
	ruleRepo    repository.CommissionRuleRepository
	listingRepo repository.ListingRepository
	ruleCache   *cache.RuleCache
	logger      *zap.Logger
}

func NewCommissionService(
	orderRepo repository.OrderRepository,
	ruleRepo repository.CommissionRuleRepository,
	listingRepo repository.ListingRepository,
	ruleCache *cache.RuleCache,
	logger *zap.Logger,
) CommissionService {
	return &commissionServiceImpl{
		orderRepo:   orderRepo,
		ruleRepo:    ruleRepo,
		listingRepo: listingRepo,
		ruleCache:   ruleCache,
		logger:      logger,
	}
}

// Calculate resolves a commission rate for every item of the order, writes
// rate/amount/seller onto the items and the summed total onto the order.
// All writes are absolute values inside one transaction, so recomputing an
// unchanged order is idempotent.
func (s *commissionServiceImpl) Calculate(ctx context.Context, orderID string) (*dto.CommissionResult, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	rules, err := s.activeRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("load commission rules: %w", err)
	}

	total := decimal.Zero
	updates := make([]repository.ItemCommissionUpdate, 0, len(items))
	breakdown := make([]dto.CommissionBreakdownItem, 0, len(items))

	for _, item := range items {
		// A missing listing only loses the item-level inputs (override,
		// seller, category); resolution falls through to the remaining
		// levels instead of aborting the order.
		listing, err := s.listingRepo.FindByID(ctx, item.ListingID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("find listing %s: %w", item.ListingID, err)
			}
			s.logger.Warn("listing missing during commission resolution",
				zap.String("order_id", orderID),
				zap.String("listing_id", item.ListingID))
			listing = nil
		}

		rate, source := resolveRate(item, listing, order, rules)
		amount := roundMoney(item.TotalPrice.Mul(rate).Div(decimal.NewFromInt(100)))
		total = total.Add(amount)

		sellerID := item.SellerID
		if listing != nil && listing.SellerID != nil {
			sellerID = listing.SellerID
		}

		updates = append(updates, repository.ItemCommissionUpdate{
			ItemID:   item.ID,
			SellerID: sellerID,
			Rate:     rate,
			Amount:   amount,
			Source:   source,
		})
		breakdown = append(breakdown, dto.CommissionBreakdownItem{
			ItemID:    item.ID,
			ItemTitle: item.Title,
			Rate:      rate.InexactFloat64(),
			Source:    source,
			Amount:    amount.InexactFloat64(),
		})
	}

	if err := s.orderRepo.ApplyCommission(ctx, orderID, updates, total); err != nil {
		return nil, fmt.Errorf("apply commission: %w", err)
	}

	s.logger.Info("commission calculated",
		zap.String("order_id", orderID),
		zap.String("total_commission", total.String()),
		zap.Int("items", len(items)))

	return &dto.CommissionResult{
		Success:         true,
		OrderID:         orderID,
		TotalCommission: total.InexactFloat64(),
		Breakdown:       breakdown,
	}, nil
}

func (s *commissionServiceImpl) activeRules(ctx context.Context) ([]*model.CommissionRule, error) {
	if rules, ok := s.ruleCache.Get(ctx); ok {
		return rules, nil
	}

	rules, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	s.ruleCache.Set(ctx, rules)
	return rules, nil
}

// resolveRate walks the precedence hierarchy for one item, first match
// wins: item override, product_type rule, seller rule, event rule, category
// rule, default rule, hard-coded fallback.
func resolveRate(item *model.OrderItem, listing *model.Listing, order *model.Order, rules []*model.CommissionRule) (decimal.Decimal, string) {
	if listing != nil && listing.CommissionRate.Valid {
		return listing.CommissionRate.Decimal, SourceItem
	}

	if rule := findRule(rules, model.RuleTypeProductType, item.ListingID); rule != nil {
		return rule.Rate, SourceProductType
	}

	sellerID := item.SellerID
	if listing != nil && listing.SellerID != nil {
		sellerID = listing.SellerID
	}
	if sellerID != nil {
		if rule := findRule(rules, model.RuleTypeSeller, *sellerID); rule != nil {
			return rule.Rate, SourceSeller
		}
	}

	if order.EventID != nil {
		if rule := findRule(rules, model.RuleTypeEvent, *order.EventID); rule != nil {
			return rule.Rate, SourceEvent
		}
	}

	if listing != nil && listing.CategoryID != nil {
		if rule := findRule(rules, model.RuleTypeCategory, *listing.CategoryID); rule != nil {
			return rule.Rate, SourceCategory
		}
	}

	for _, rule := range rules {
		if rule.RuleType == model.RuleTypeDefault && rule.IsActive {
			return rule.Rate, SourceDefault
		}
	}

	return fallbackRate, SourceFallback
}

// O(rules) per lookup; the active rule set is expected to stay small.
func findRule(rules []*model.CommissionRule, ruleType, referenceID string) *model.CommissionRule {
	for _, rule := range rules {
		if !rule.IsActive || rule.RuleType != ruleType {
			continue
		}
		if rule.ReferenceID != nil && *rule.ReferenceID == referenceID {
			return rule
		}
	}
	return nil
}

func (s *commissionServiceImpl) ListRules(ctx context.Context) ([]*model.CommissionRule, error) {
	return s.ruleRepo.List(ctx)
}

func (s *commissionServiceImpl) CreateRule(ctx context.Context, req *dto.RuleRequest) (*model.CommissionRule, error) {
	if !model.ValidRuleType(req.RuleType) {
		return nil, fmt.Errorf("%w: unknown rule type %q", ErrInvalidRule, req.RuleType)
	}
	if req.Rate < 0 || req.Rate > 100 {
		return nil, fmt.Errorf("%w: rate must be between 0 and 100", ErrInvalidRule)
	}
	if req.RuleType != model.RuleTypeDefault && (req.ReferenceID == nil || *req.ReferenceID == "") {
		return nil, fmt.Errorf("%w: %s rules require a reference id", ErrInvalidRule, req.RuleType)
	}

	rule := &model.CommissionRule{
		RuleType:    req.RuleType,
		ReferenceID: req.ReferenceID,
		Rate:        decimal.NewFromFloat(req.Rate),
		IsActive:    true,
		Description: req.Description,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("create rule: %w", err)
	}

	s.ruleCache.Invalidate(ctx)
	return rule, nil
}

func (s *commissionServiceImpl) UpdateRule(ctx context.Context, id string, req *dto.RuleRequest) (*model.CommissionRule, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("find rule: %w", err)
	}

	if req.Rate < 0 || req.Rate > 100 {
		return nil, fmt.Errorf("%w: rate must be between 0 and 100", ErrInvalidRule)
	}

	rule.Rate = decimal.NewFromFloat(req.Rate)
	rule.Description = req.Description
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("update rule: %w", err)
	}

	s.ruleCache.Invalidate(ctx)
	return rule, nil
}
