// FILE: internal/dto/audit_dto.go
package dto

// CreditAuditMessage travels over the in-process bus from the ledger paths
// to the audit consumer, which writes it into credit_transactions.
type CreditAuditMessage struct {
	UserUID         string `json:"user_uid"`
	TransactionType string `json:"transaction_type"`
	Amount          int    `json:"amount"`
	ServiceUsed     string `json:"service_used,omitempty"`
	RelatedId       string `json:"related_id,omitempty"`
	Notes           string `json:"notes,omitempty"`
}
