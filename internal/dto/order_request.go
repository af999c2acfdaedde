package dto

type OrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type OrderRequest struct {
	Items         []OrderItem `json:"items"`
	PaidAmount    *int64      `json:"paid_amount"`
	PaymentMethod string      `json:"payment_method"`
	CustomerName  string      `json:"customer_name"`
}

type CheckoutRequest struct {
	Items        []OrderItem `json:"items"`
	CustomerName string      `json:"customer_name"`
}

type PaymentRequest struct {
	Items         []OrderItem `json:"items"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
}
