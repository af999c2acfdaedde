package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/warunggenz/pos-backend/internal/dto"
	"github.com/warunggenz/pos-backend/pkg/errs"
)

type ReportRepositoryImpl struct {
	db *sqlx.DB
}

func CreateReportRepository(db *sqlx.DB) ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

func (r *ReportRepositoryImpl) GetSalesSummary(ctx context.Context, startTimestamp, endTimestamp int64) (totalSales int64, totalTransactions int64, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT COALESCE(SUM(total_amount), 0), COUNT(id) FROM transactions WHERE status = 'success' AND created_at >= $1 AND created_at <= $2", startTimestamp, endTimestamp)
	err = row.Scan(&totalSales, &totalTransactions)
	if err != nil {
		log.Error().Err(err).Str("component", "GetSalesSummary").Msg("")
		return 0, 0, errs.ErrInternalServer
	}

	return
}

func (r *ReportRepositoryImpl) GetTopProducts(ctx context.Context, startTimestamp, endTimestamp int64, limit int) (data []dto.TopProductRecord, err error) {
	err = r.db.SelectContext(ctx, &data, `SELECT td.product_id, p.name AS product_name, SUM(td.quantity) AS quantity_sold, SUM(td.subtotal) AS revenue
		FROM transaction_details td
		JOIN transactions t ON t.id = td.transaction_id
		JOIN products p ON p.id = td.product_id
		WHERE t.status = 'success' AND t.created_at >= $1 AND t.created_at <= $2
		GROUP BY td.product_id, p.name
		ORDER BY quantity_sold DESC
		LIMIT $3`, startTimestamp, endTimestamp, limit)
	if err != nil {
		log.Error().Err(err).Str("component", "GetTopProducts").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *ReportRepositoryImpl) GetStockReport(ctx context.Context, lowStockThreshold int64) (data []dto.StockReportRecord, err error) {
	err = r.db.SelectContext(ctx, &data, "SELECT id AS product_id, name AS product_name, stock, stock <= $1 AS low_stock FROM products ORDER BY stock ASC, name", lowStockThreshold)
	if err != nil {
		log.Error().Err(err).Str("component", "GetStockReport").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}
