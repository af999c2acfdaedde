package dto

type TransactionDetailResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

type TransactionResponse struct {
	ID              int64                       `json:"id"`
	OrderID         *string                     `json:"order_id,omitempty"`
	InvoiceNumber   string                      `json:"invoice_number"`
	TransactionCode string                      `json:"transaction_code"`
	CashierID       *int64                      `json:"cashier_id"`
	UserID          *int64                      `json:"user_id"`
	CustomerName    string                      `json:"customer_name"`
	TotalAmount     int64                       `json:"total_amount"`
	PaidAmount      int64                       `json:"paid_amount"`
	ChangeAmount    int64                       `json:"change_amount"`
	PaymentMethod   string                      `json:"payment_method"`
	Status          string                      `json:"status"`
	IsConfirmed     bool                        `json:"is_confirmed"`
	ConfirmedAt     *int64                      `json:"confirmed_at"`
	CreatedAt       int64                       `json:"created_at"`
	Details         []TransactionDetailResponse `json:"details,omitempty"`
}

// PublicTransactionResponse is the reduced receipt view served without
// authentication. Internal actor identifiers stay out of it.
type PublicTransactionResponse struct {
	ID            int64                       `json:"id"`
	OrderID       *string                     `json:"order_id"`
	InvoiceNumber string                      `json:"invoice_number"`
	CustomerName  string                      `json:"customer_name"`
	TotalAmount   int64                       `json:"total_amount"`
	PaymentMethod string                      `json:"payment_method"`
	Status        string                      `json:"status"`
	CreatedAt     int64                       `json:"created_at"`
	Details       []TransactionDetailResponse `json:"details"`
}

type PaymentResponse struct {
	Token       string              `json:"token"`
	OrderID     string              `json:"order_id"`
	Transaction TransactionResponse `json:"transaction"`
}
