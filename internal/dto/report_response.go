package dto

type ReportFilter struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

type TopProductRecord struct {
	ProductID    int64  `json:"product_id" db:"product_id"`
	ProductName  string `json:"product_name" db:"product_name"`
	QuantitySold int64  `json:"quantity_sold" db:"quantity_sold"`
	Revenue      int64  `json:"revenue" db:"revenue"`
}

type SalesReportResponse struct {
	StartDate         string             `json:"start_date"`
	EndDate           string             `json:"end_date"`
	TotalSales        int64              `json:"total_sales"`
	TotalTransactions int64              `json:"total_transactions"`
	AverageSale       int64              `json:"average_sale"`
	TopProducts       []TopProductRecord `json:"top_products"`
}

type StockReportRecord struct {
	ProductID   int64  `json:"product_id" db:"product_id"`
	ProductName string `json:"product_name" db:"product_name"`
	Stock       int64  `json:"stock" db:"stock"`
	LowStock    bool   `json:"low_stock" db:"low_stock"`
}
