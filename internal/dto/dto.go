package dto

import "time"

type CalculateCommissionRequest struct {
	OrderID string `json:"orderId"`
}

type CommissionBreakdownItem struct {
	ItemID    string  `json:"itemId"`
	ItemTitle string  `json:"itemTitle"`
	Rate      float64 `json:"rate"`
	Source    string  `json:"source"`
	Amount    float64 `json:"amount"`
}

type CommissionResult struct {
	Success         bool                      `json:"success"`
	OrderID         string                    `json:"orderId"`
	TotalCommission float64                   `json:"totalCommission"`
	Breakdown       []CommissionBreakdownItem `json:"breakdown"`
}

type CreateIntentRequest struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
}

type IntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type VerifyRequest struct {
	OrderID string `json:"order_id"`
}

type VerifyResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type RuleRequest struct {
	RuleType    string  `json:"rule_type"`
	ReferenceID *string `json:"reference_id"`
	Rate        float64 `json:"rate"`
	IsActive    *bool   `json:"is_active"`
	Description string  `json:"description"`
}

type RuleResponse struct {
	ID          string  `json:"id"`
	RuleType    string  `json:"rule_type"`
	ReferenceID *string `json:"reference_id,omitempty"`
	Rate        float64 `json:"rate"`
	IsActive    bool    `json:"is_active"`
	Description string  `json:"description,omitempty"`
}

type OrderItemResponse struct {
	ID               string   `json:"id"`
	ListingID        string   `json:"listing_id"`
	ListingType      string   `json:"listing_type"`
	Title            string   `json:"title"`
	Quantity         int      `json:"quantity"`
	UnitPrice        float64  `json:"unit_price"`
	TotalPrice       float64  `json:"total_price"`
	SellerID         *string  `json:"seller_id,omitempty"`
	CommissionRate   *float64 `json:"commission_rate,omitempty"`
	CommissionAmount *float64 `json:"commission_amount,omitempty"`
	CommissionSource string   `json:"commission_source,omitempty"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerEmail   string              `json:"customer_email"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	TotalAmount     float64             `json:"total_amount"`
	Currency        string              `json:"currency"`
	TotalCommission *float64            `json:"total_commission,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	Items           []OrderItemResponse `json:"items"`
}
