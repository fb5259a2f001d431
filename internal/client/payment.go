package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"marketplace-settlement/internal/config"
	"net/http"
	"time"
)

// PaymentClient talks to the hosted payment provider's intents API.
type PaymentClient interface {
	CreateIntent(ctx context.Context, params *CreateIntentParams) (*PaymentIntent, error)
	GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
	VerifyWebhookSignature(signature string, body []byte) error
}

type CreateIntentParams struct {
	// minor units of the currency, never a client-supplied amount
	AmountMinor int64
	Currency    string
	Metadata    map[string]string
}

type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type paymentClientImpl struct {
	httpClient    *http.Client
	baseApiURL    string
	secretKey     string
	webhookSecret string
}

func NewPaymentClient(cfg *config.Provider) PaymentClient {
	return &paymentClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:    cfg.BaseApiURL,
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
	}
}

func (c *paymentClientImpl) CreateIntent(ctx context.Context, params *CreateIntentParams) (*PaymentIntent, error) {
	payload := map[string]interface{}{
		"amount":   params.AmountMinor,
		"currency": params.Currency,
		"metadata": params.Metadata,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/payment_intents",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	return c.doIntentRequest(req)
}

func (c *paymentClientImpl) GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	url := fmt.Sprintf("%s/v1/payment_intents/%s", c.baseApiURL, intentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	return c.doIntentRequest(req)
}

func (c *paymentClientImpl) doIntentRequest(req *http.Request) (*PaymentIntent, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payment provider error %d: %s", resp.StatusCode, string(b))
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}

	return &intent, nil
}

func (c *paymentClientImpl) VerifyWebhookSignature(signature string, body []byte) error {
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("webhook signature mismatch")
	}
	return nil
}
