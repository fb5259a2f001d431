package repository

import (
	"context"
	"marketplace-settlement/internal/model"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemCommissionUpdate struct {
	ItemID   string
	SellerID *string
	Rate     decimal.Decimal
	Amount   decimal.Decimal
	Source   string
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	FindByPaymentIntent(ctx context.Context, intentID string) (*model.Order, error)
	GetItems(ctx context.Context, orderID string) ([]*model.OrderItem, error)
	ApplyCommission(ctx context.Context, orderID string, updates []ItemCommissionUpdate, total decimal.Decimal) error
	SetPaymentIntent(ctx context.Context, orderID, intentID string) error
	MarkPaid(ctx context.Context, orderID string) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByPaymentIntent(ctx context.Context, intentID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("payment_intent_id = ?", intentID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) GetItems(ctx context.Context, orderID string) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

// ApplyCommission writes the resolved rate/amount/seller onto each item and
// the summed total onto the order in one transaction. All values are
// absolute, so re-running a full recompute converges.
func (r *orderRepoImpl) ApplyCommission(ctx context.Context, orderID string, updates []ItemCommissionUpdate, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			err := tx.Model(&model.OrderItem{}).
				Where("id = ? AND order_id = ?", u.ItemID, orderID).
				Updates(map[string]interface{}{
					"seller_id":         u.SellerID,
					"commission_rate":   u.Rate,
					"commission_amount": u.Amount,
					"commission_source": u.Source,
					"updated_at":        time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&model.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"total_commission": total,
				"updated_at":       time.Now(),
			}).Error
	})
}

func (r *orderRepoImpl) SetPaymentIntent(ctx context.Context, orderID, intentID string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_intent_id": intentID,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkPaid transitions the order to its terminal paid state exactly once.
// Marking an already-paid order is a no-op, so webhook and verification
// paths can race safely.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&model.Order{}).
			Where("id = ? AND status <> ?", orderID, model.OrderStatusPaid).
			Updates(map[string]interface{}{
				"status":         model.OrderStatusPaid,
				"payment_status": model.PaymentStatusCompleted,
				"paid_at":        now,
				"updated_at":     now,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Order{}).
				Where("id = ? AND status = ?", orderID, model.OrderStatusPaid).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
