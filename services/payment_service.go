package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/smartcanteen/canteen-app/utils"
)

// Gateway charge outcomes.
const (
	ChargeSuccess = "success"
	ChargeFailure = "failure"
)

// ChargeResult is what the payment gateway answers: an outcome plus its
// transaction id on success.
type ChargeResult struct {
	Status    string `json:"status"`
	PaymentID string `json:"payment_id"`
}

// PaymentProcessor is the opaque payment collaborator. The production
// implementation talks to the gateway over HTTP; tests stub it.
type PaymentProcessor interface {
	ProcessPayment(amount float64) (*ChargeResult, error)
}

// GatewayConfig holds the payment gateway credentials.
type GatewayConfig struct {
	BaseURL    string
	APIKey     string
	MerchantID string
}

// GatewayService charges cards through the external payment gateway.
type GatewayService struct {
	config     *GatewayConfig
	httpClient *http.Client
}

func NewGatewayService(cfg *GatewayConfig) *GatewayService {
	return &GatewayService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ValidateConfig checks that every credential needed to charge is set.
func (s *GatewayService) ValidateConfig() error {
	if s.config == nil {
		return errors.New("gateway config is nil")
	}
	if s.config.BaseURL == "" {
		return errors.New("gateway base URL is required")
	}
	if s.config.APIKey == "" {
		return errors.New("gateway API key is required")
	}
	if s.config.MerchantID == "" {
		return errors.New("gateway merchant id is required")
	}
	return nil
}

type chargeRequest struct {
	MerchantID string  `json:"merchant_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Reference  string  `json:"reference"`
}

// ProcessPayment asks the gateway to charge amount. A decline comes
// back as a ChargeFailure result, not an error; errors mean the
// gateway could not be reached at all.
func (s *GatewayService) ProcessPayment(amount float64) (*ChargeResult, error) {
	if err := s.ValidateConfig(); err != nil {
		return nil, err
	}

	reqBody := chargeRequest{
		MerchantID: s.config.MerchantID,
		Amount:     amount,
		Currency:   "INR",
		Reference:  uuid.NewString(),
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost,
		fmt.Sprintf("%s/charges", s.config.BaseURL), bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Declines (4xx) still carry a result body
	var result ChargeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("gateway returned unreadable response (HTTP %d): %w",
			resp.StatusCode, err)
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("gateway error: HTTP %d", resp.StatusCode)
	}

	if result.Status != ChargeSuccess {
		result.Status = ChargeFailure
		utils.InfoLogger.Printf("Gateway declined charge of %.2f (ref %s)",
			amount, reqBody.Reference)
	}
	return &result, nil
}
