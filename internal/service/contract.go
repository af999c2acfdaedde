package service

import (
	"context"

	"github.com/warunggenz/pos-backend/internal/domain"
	"github.com/warunggenz/pos-backend/internal/dto"
	pkgdto "github.com/warunggenz/pos-backend/pkg/dto"
)

type OrderService interface {
	CreateOrder(ctx context.Context, actor domain.Actor, req dto.OrderRequest) (resp dto.TransactionResponse, err error)
	Checkout(ctx context.Context, actor domain.Actor, req dto.CheckoutRequest) (resp dto.TransactionResponse, err error)
	CreateGatewayOrder(ctx context.Context, actor domain.Actor, req dto.PaymentRequest) (resp dto.PaymentResponse, err error)
	HandlePaymentNotification(ctx context.Context, req dto.PaymentNotification) (err error)
	ConfirmTransaction(ctx context.Context, actor domain.Actor, id int64) (resp dto.TransactionResponse, err error)
	GetTransaction(ctx context.Context, actor domain.Actor, id int64) (resp dto.TransactionResponse, err error)
	GetTransactions(ctx context.Context, actor domain.Actor, filter dto.TransactionFilter) (resp pkgdto.PaginationResponse, err error)
	GetTransactionByOrderID(ctx context.Context, orderID string) (resp dto.PublicTransactionResponse, err error)
	ExpireStalePayments()
}

type CatalogService interface {
	GetProducts(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
	GetProductByID(ctx context.Context, id int64) (resp dto.ProductResponse, err error)
}

type ReportService interface {
	GetSalesReport(ctx context.Context, filter dto.ReportFilter) (resp dto.SalesReportResponse, err error)
	GetStockReport(ctx context.Context) (resp []dto.StockReportRecord, err error)
}
