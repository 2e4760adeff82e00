// FILE: internal/dto/payment_dto.go
package dto

type CheckoutResponse struct {
	URL string `json:"url"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	// Signature validation fields
	SignatureKey string `json:"signature_key"`
	StatusCode   string `json:"status_code"`
	GrossAmount  string `json:"gross_amount"`
}

type WebhookResponse struct {
	Status string `json:"status"`
}
