package repository

import (
	"context"

	"github.com/warunggenz/pos-backend/internal/domain"
	"github.com/warunggenz/pos-backend/internal/dto"
	pkgdto "github.com/warunggenz/pos-backend/pkg/dto"
)

type TransactionRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo TransactionRepository) error) error

	// Transaction-scoped operations; only legal inside HandleTrx.
	GetProductForUpdate(ctx context.Context, productID int64) (data domain.Product, err error)
	DecrementProductStock(ctx context.Context, productID int64, quantity int64) (err error)
	NextTransactionNumber(ctx context.Context) (seq int64, err error)
	AddTransaction(ctx context.Context, data domain.Transaction) (id int64, err error)
	AddTransactionDetails(ctx context.Context, data []domain.TransactionDetail) (err error)
	GetTransactionByIDForUpdate(ctx context.Context, id int64) (data domain.Transaction, err error)
	ConfirmTransaction(ctx context.Context, id int64, cashierID int64, confirmedAt int64) (err error)

	GetTransactionByID(ctx context.Context, id int64) (data domain.Transaction, err error)
	GetTransactionByOrderID(ctx context.Context, orderID string) (data domain.Transaction, err error)
	GetTransactionDetails(ctx context.Context, transactionID int64) (data []domain.TransactionDetail, err error)
	GetTransactions(ctx context.Context, filter dto.TransactionFilter) (data []domain.Transaction, err error)
	CountTransactions(ctx context.Context, filter dto.TransactionFilter) (count int64, err error)
	UpdateTransactionStatus(ctx context.Context, id int64, status domain.TransactionStatus) (err error)
}

type ProductRepository interface {
	GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error)
	CountProducts(ctx context.Context, filter pkgdto.Filter) (count int64, err error)
	GetProductByID(ctx context.Context, id int64) (data domain.Product, err error)
}

type ReportRepository interface {
	GetSalesSummary(ctx context.Context, startTimestamp, endTimestamp int64) (totalSales int64, totalTransactions int64, err error)
	GetTopProducts(ctx context.Context, startTimestamp, endTimestamp int64, limit int) (data []dto.TopProductRecord, err error)
	GetStockReport(ctx context.Context, lowStockThreshold int64) (data []dto.StockReportRecord, err error)
}
