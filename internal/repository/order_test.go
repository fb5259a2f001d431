package repository

import (
	"context"
	"testing"

	"marketplace-settlement/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// unique name per test so parallel tests get isolated in-memory databases
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Listing{},
		&model.Order{},
		&model.OrderItem{},
		&model.CommissionRule{},
		&model.WebhookEvent{},
	))

	return db
}

func seedOrder(t *testing.T, db *gorm.DB, status string) *model.Order {
	t.Helper()

	order := &model.Order{
		ID:            uuid.NewString(),
		OrderNumber:   "MP-" + uuid.NewString()[:8],
		CustomerEmail: "buyer@example.com",
		TotalAmount:   decimal.RequireFromString("100.00"),
		Currency:      "USD",
		Status:        status,
		PaymentStatus: model.PaymentStatusPending,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func seedItem(t *testing.T, db *gorm.DB, orderID, totalPrice string) *model.OrderItem {
	t.Helper()

	item := &model.OrderItem{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		ListingID:   uuid.NewString(),
		ListingType: model.ListingTypeProduct,
		Title:       "Test item",
		Quantity:    1,
		UnitPrice:   decimal.RequireFromString(totalPrice),
		TotalPrice:  decimal.RequireFromString(totalPrice),
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestApplyCommission_WritesItemsAndTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, model.OrderStatusPending)
	itemA := seedItem(t, db, order.ID, "150.00")
	itemB := seedItem(t, db, order.ID, "80.00")

	sellerID := "seller-1"
	err := repo.ApplyCommission(ctx, order.ID, []ItemCommissionUpdate{
		{ItemID: itemA.ID, SellerID: &sellerID, Rate: decimal.RequireFromString("8"), Amount: decimal.RequireFromString("12.00"), Source: "seller"},
		{ItemID: itemB.ID, Rate: decimal.RequireFromString("12"), Amount: decimal.RequireFromString("9.60"), Source: "category"},
	}, decimal.RequireFromString("21.60"))
	require.NoError(t, err)

	var got model.OrderItem
	require.NoError(t, db.First(&got, "id = ?", itemA.ID).Error)
	require.True(t, got.CommissionRate.Valid)
	assert.True(t, got.CommissionRate.Decimal.Equal(decimal.RequireFromString("8")))
	assert.True(t, got.CommissionAmount.Decimal.Equal(decimal.RequireFromString("12.00")))
	assert.Equal(t, "seller", got.CommissionSource)
	require.NotNil(t, got.SellerID)
	assert.Equal(t, "seller-1", *got.SellerID)

	var gotOrder model.Order
	require.NoError(t, db.First(&gotOrder, "id = ?", order.ID).Error)
	require.True(t, gotOrder.TotalCommission.Valid)
	assert.True(t, gotOrder.TotalCommission.Decimal.Equal(decimal.RequireFromString("21.60")))
}

func TestApplyCommission_Rerunnable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, model.OrderStatusPending)
	item := seedItem(t, db, order.ID, "100.00")

	updates := []ItemCommissionUpdate{
		{ItemID: item.ID, Rate: decimal.RequireFromString("10"), Amount: decimal.RequireFromString("10.00"), Source: "default"},
	}
	require.NoError(t, repo.ApplyCommission(ctx, order.ID, updates, decimal.RequireFromString("10.00")))
	require.NoError(t, repo.ApplyCommission(ctx, order.ID, updates, decimal.RequireFromString("10.00")))

	var gotOrder model.Order
	require.NoError(t, db.First(&gotOrder, "id = ?", order.ID).Error)
	assert.True(t, gotOrder.TotalCommission.Decimal.Equal(decimal.RequireFromString("10.00")))
}

func TestSetPaymentIntent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, model.OrderStatusPending)

	require.NoError(t, repo.SetPaymentIntent(ctx, order.ID, "pi_123"))

	got, err := repo.FindByPaymentIntent(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestSetPaymentIntent_UnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)

	err := repo.SetPaymentIntent(context.Background(), "missing", "pi_123")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMarkPaid_TransitionsOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, model.OrderStatusPending)

	require.NoError(t, repo.MarkPaid(ctx, order.ID))

	var got model.Order
	require.NoError(t, db.First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, model.OrderStatusPaid, got.Status)
	assert.Equal(t, model.PaymentStatusCompleted, got.PaymentStatus)
	require.NotNil(t, got.PaidAt)
	firstPaidAt := *got.PaidAt

	// second settle is a no-op and keeps the original paid timestamp
	require.NoError(t, repo.MarkPaid(ctx, order.ID))
	require.NoError(t, db.First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, model.OrderStatusPaid, got.Status)
	assert.True(t, got.PaidAt.Equal(firstPaidAt))
}

func TestMarkPaid_UnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)

	err := repo.MarkPaid(context.Background(), "missing")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCommissionRuleRepository_ListActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommissionRuleRepository(db)
	ctx := context.Background()

	ref := "seller-1"
	require.NoError(t, repo.Create(ctx, &model.CommissionRule{
		RuleType: model.RuleTypeSeller, ReferenceID: &ref,
		Rate: decimal.RequireFromString("8"), IsActive: true,
	}))
	require.NoError(t, repo.Create(ctx, &model.CommissionRule{
		RuleType: model.RuleTypeDefault,
		Rate:     decimal.RequireFromString("15"), IsActive: false,
	}))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, model.RuleTypeSeller, active[0].RuleType)
	assert.NotEmpty(t, active[0].ID) // BeforeCreate assigns a uuid

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCommissionRuleRepository_InactiveRuleStaysInactive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommissionRuleRepository(db)
	ctx := context.Background()

	rule := &model.CommissionRule{
		RuleType: model.RuleTypeDefault,
		Rate:     decimal.RequireFromString("15"),
		IsActive: false,
	}
	require.NoError(t, repo.Create(ctx, rule))

	got, err := repo.FindByID(ctx, rule.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive, "rule created inactive must be stored inactive")

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestWebhookEventRepository_Idempotency(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWebhookEventRepository(db)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "evt-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.MarkProcessed(ctx, "evt-1", model.EventPaymentSucceeded))

	exists, err = repo.Exists(ctx, "evt-1")
	require.NoError(t, err)
	assert.True(t, exists)
}
