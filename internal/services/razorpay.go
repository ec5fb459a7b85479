package services

import (
	"fmt"
	"os"

	razorpay "github.com/razorpay/razorpay-go"
	rzputils "github.com/razorpay/razorpay-go/utils"
)

// RazorpayService wraps the gateway client. All signature checks happen
// server-side here; a client-asserted success is never trusted outside of
// the explicitly enabled test mode.
type RazorpayService struct {
	client        *razorpay.Client
	keySecret     string
	webhookSecret string
	testMode      bool
}

// NewRazorpayService builds the gateway wrapper from the environment
// (RAZORPAY_KEY_ID, RAZORPAY_KEY_SECRET, RAZORPAY_WEBHOOK_SECRET,
// RAZORPAY_TEST_MODE).
func NewRazorpayService() *RazorpayService {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")

	return &RazorpayService{
		client:        razorpay.NewClient(keyID, keySecret),
		keySecret:     keySecret,
		webhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		testMode:      os.Getenv("RAZORPAY_TEST_MODE") == "true",
	}
}

// TestMode reports whether fabricated payment success is permitted.
func (s *RazorpayService) TestMode() bool {
	return s.testMode
}

// CreateOrder creates a gateway order for amount (in rupees) and returns the
// order id. Notes carry the booking reference back through the webhook.
func (s *RazorpayService) CreateOrder(amount int, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amount * 100, // paise
		"currency": "INR",
		"receipt":  receipt,
		"notes":    notes,
	}

	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create razorpay order: %v", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return "", fmt.Errorf("razorpay order response missing id")
	}
	return orderID, nil
}

// VerifyCheckoutSignature verifies the HMAC the checkout widget returns
// after a payment.
func (s *RazorpayService) VerifyCheckoutSignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return rzputils.VerifyPaymentSignature(params, signature, s.keySecret)
}

// VerifyWebhookSignature verifies the X-Razorpay-Signature header against
// the raw webhook body.
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return false
	}
	return rzputils.VerifyWebhookSignature(string(body), signature, s.webhookSecret)
}
