package service

import (
	"context"
	"fmt"

	"github.com/warunggenz/pos-backend/internal/dto"
	"github.com/warunggenz/pos-backend/internal/repository"
	"github.com/warunggenz/pos-backend/pkg/errs"
	"github.com/warunggenz/pos-backend/pkg/utils"
)

const (
	topProductsLimit  = 5
	lowStockThreshold = 10
)

type ReportServiceImpl struct {
	repository repository.ReportRepository
}

func CreateReportService(repository repository.ReportRepository) ReportService {
	return &ReportServiceImpl{repository: repository}
}

func (s *ReportServiceImpl) GetSalesReport(ctx context.Context, filter dto.ReportFilter) (resp dto.SalesReportResponse, err error) {
	if filter.StartDate == "" || filter.EndDate == "" {
		return resp, fmt.Errorf("%w: start_date and end_date are required", errs.ErrClient)
	}

	startTimestamp, err := utils.ParseDateStartOfDay(filter.StartDate)
	if err != nil {
		return resp, fmt.Errorf("%w: invalid start_date", errs.ErrClient)
	}

	endTimestamp, err := utils.ParseDateEndOfDay(filter.EndDate)
	if err != nil {
		return resp, fmt.Errorf("%w: invalid end_date", errs.ErrClient)
	}

	if endTimestamp < startTimestamp {
		return resp, fmt.Errorf("%w: end_date precedes start_date", errs.ErrClient)
	}

	totalSales, totalTransactions, err := s.repository.GetSalesSummary(ctx, startTimestamp, endTimestamp)
	if err != nil {
		return resp, err
	}

	topProducts, err := s.repository.GetTopProducts(ctx, startTimestamp, endTimestamp, topProductsLimit)
	if err != nil {
		return resp, err
	}

	resp = dto.SalesReportResponse{
		StartDate:         filter.StartDate,
		EndDate:           filter.EndDate,
		TotalSales:        totalSales,
		TotalTransactions: totalTransactions,
		TopProducts:       topProducts,
	}

	if totalTransactions > 0 {
		resp.AverageSale = totalSales / totalTransactions
	}

	return resp, nil
}

func (s *ReportServiceImpl) GetStockReport(ctx context.Context) (resp []dto.StockReportRecord, err error) {
	return s.repository.GetStockReport(ctx, lowStockThreshold)
}
