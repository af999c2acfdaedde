package domain

type Transaction struct {
	ID              int64             `db:"id"`
	OrderID         *string           `db:"order_id"`
	InvoiceNumber   string            `db:"invoice_number"`
	TransactionCode string            `db:"transaction_code"`
	CashierID       *int64            `db:"cashier_id"`
	UserID          *int64            `db:"user_id"`
	CustomerName    string            `db:"customer_name"`
	TotalAmount     int64             `db:"total_amount"`
	PaidAmount      int64             `db:"paid_amount"`
	ChangeAmount    int64             `db:"change_amount"`
	PaymentMethod   string            `db:"payment_method"`
	Status          TransactionStatus `db:"status"`
	IsConfirmed     bool              `db:"is_confirmed"`
	ConfirmedAt     *int64            `db:"confirmed_at"`
	CreatedAt       int64             `db:"created_at"`
	Details         []TransactionDetail
}

type TransactionDetail struct {
	ID            int64  `db:"id"`
	TransactionID int64  `db:"transaction_id"`
	ProductID     int64  `db:"product_id"`
	ProductName   string `db:"product_name"`
	Price         int64  `db:"price"`
	Quantity      int64  `db:"quantity"`
	Subtotal      int64  `db:"subtotal"`
}
