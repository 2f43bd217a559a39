package dto

// WebhookAck is returned to the gateway for every authenticated, well-formed delivery
type WebhookAck struct {
	Status            string `json:"status"`
	Outcome           string `json:"outcome"`
	TxRef             string `json:"txRef,omitempty"`
	TransactionStatus string `json:"transactionStatus,omitempty"`
}
