package service

import (
	"context"
	"marketplace-settlement/internal/client"
	"marketplace-settlement/internal/model"
	"marketplace-settlement/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	Order    *model.Order
	Items    []*model.OrderItem
	FindErr  error
	ItemsErr error

	AppliedUpdates []repository.ItemCommissionUpdate
	AppliedTotal   decimal.Decimal
	ApplyCalls     int
	ApplyErr       error

	SetIntentOrderID string
	SetIntentID      string
	SetIntentErr     error

	MarkPaidCalls int
	MarkPaidErr   error
}

func (m *MockOrderRepository) FindByID(_ context.Context, orderID string) (*model.Order, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	if m.Order == nil || m.Order.ID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	return m.Order, nil
}

func (m *MockOrderRepository) FindByPaymentIntent(_ context.Context, intentID string) (*model.Order, error) {
	if m.Order != nil && m.Order.PaymentIntentID != nil && *m.Order.PaymentIntentID == intentID {
		return m.Order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockOrderRepository) GetItems(_ context.Context, _ string) ([]*model.OrderItem, error) {
	return m.Items, m.ItemsErr
}

func (m *MockOrderRepository) ApplyCommission(_ context.Context, _ string, updates []repository.ItemCommissionUpdate, total decimal.Decimal) error {
	m.ApplyCalls++
	if m.ApplyErr != nil {
		return m.ApplyErr
	}
	m.AppliedUpdates = updates
	m.AppliedTotal = total
	return nil
}

func (m *MockOrderRepository) SetPaymentIntent(_ context.Context, orderID, intentID string) error {
	if m.SetIntentErr != nil {
		return m.SetIntentErr
	}
	m.SetIntentOrderID = orderID
	m.SetIntentID = intentID
	return nil
}

func (m *MockOrderRepository) MarkPaid(_ context.Context, _ string) error {
	m.MarkPaidCalls++
	return m.MarkPaidErr
}

// MockRuleRepository implements repository.CommissionRuleRepository
type MockRuleRepository struct {
	Rules   []*model.CommissionRule
	ListErr error

	Created *model.CommissionRule
	Updated *model.CommissionRule
}

func (m *MockRuleRepository) ListActive(_ context.Context) ([]*model.CommissionRule, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	active := make([]*model.CommissionRule, 0, len(m.Rules))
	for _, r := range m.Rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, nil
}

func (m *MockRuleRepository) List(_ context.Context) ([]*model.CommissionRule, error) {
	return m.Rules, m.ListErr
}

func (m *MockRuleRepository) FindByID(_ context.Context, id string) (*model.CommissionRule, error) {
	for _, r := range m.Rules {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRuleRepository) Create(_ context.Context, rule *model.CommissionRule) error {
	m.Created = rule
	return nil
}

func (m *MockRuleRepository) Update(_ context.Context, rule *model.CommissionRule) error {
	m.Updated = rule
	return nil
}

// MockListingRepository implements repository.ListingRepository
type MockListingRepository struct {
	Listings map[string]*model.Listing
	FindErr  error
}

func (m *MockListingRepository) FindByID(_ context.Context, id string) (*model.Listing, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	if listing, ok := m.Listings[id]; ok {
		return listing, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// MockPaymentClient implements client.PaymentClient
type MockPaymentClient struct {
	CreatedParams *client.CreateIntentParams
	CreateResult  *client.PaymentIntent
	CreateErr     error

	GetCalls  int
	GetResult *client.PaymentIntent
	GetErr    error

	SignatureErr error
}

func (m *MockPaymentClient) CreateIntent(_ context.Context, params *client.CreateIntentParams) (*client.PaymentIntent, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.CreatedParams = params
	return m.CreateResult, nil
}

func (m *MockPaymentClient) GetIntent(_ context.Context, _ string) (*client.PaymentIntent, error) {
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.GetResult, nil
}

func (m *MockPaymentClient) VerifyWebhookSignature(_ string, _ []byte) error {
	return m.SignatureErr
}

// MockWebhookEventRepository implements repository.WebhookEventRepository
type MockWebhookEventRepository struct {
	Processed map[string]bool
	ExistsErr error
	MarkErr   error
}

func (m *MockWebhookEventRepository) Exists(_ context.Context, eventID string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	return m.Processed[eventID], nil
}

func (m *MockWebhookEventRepository) MarkProcessed(_ context.Context, eventID, _ string) error {
	if m.MarkErr != nil {
		return m.MarkErr
	}
	if m.Processed == nil {
		m.Processed = map[string]bool{}
	}
	m.Processed[eventID] = true
	return nil
}
