package dto

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type TransactionEvent struct {
	TransactionID   int64  `json:"transaction_id"`
	InvoiceNumber   string `json:"invoice_number"`
	TransactionCode string `json:"transaction_code"`
	OrderID         string `json:"order_id,omitempty"`
	TotalAmount     int64  `json:"total_amount"`
	Status          string `json:"status"`
}
