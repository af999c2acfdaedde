package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warunggenz/pos-backend/internal/dto"
	"github.com/warunggenz/pos-backend/pkg/errs"
)

type fakeReportRepository struct {
	totalSales        int64
	totalTransactions int64
	topProducts       []dto.TopProductRecord
	stockRecords      []dto.StockReportRecord

	lastStart, lastEnd int64
	lastThreshold      int64
}

func (f *fakeReportRepository) GetSalesSummary(ctx context.Context, startTimestamp, endTimestamp int64) (int64, int64, error) {
	f.lastStart = startTimestamp
	f.lastEnd = endTimestamp
	return f.totalSales, f.totalTransactions, nil
}

func (f *fakeReportRepository) GetTopProducts(ctx context.Context, startTimestamp, endTimestamp int64, limit int) ([]dto.TopProductRecord, error) {
	return f.topProducts, nil
}

func (f *fakeReportRepository) GetStockReport(ctx context.Context, lowStockThreshold int64) ([]dto.StockReportRecord, error) {
	f.lastThreshold = lowStockThreshold
	return f.stockRecords, nil
}

func TestGetSalesReport(t *testing.T) {
	repo := &fakeReportRepository{
		totalSales:        150000,
		totalTransactions: 4,
		topProducts: []dto.TopProductRecord{
			{ProductID: 2, ProductName: "Nasi Goreng", QuantitySold: 7, Revenue: 105000},
		},
	}
	svc := CreateReportService(repo)

	resp, err := svc.GetSalesReport(context.Background(), dto.ReportFilter{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(150000), resp.TotalSales)
	assert.Equal(t, int64(4), resp.TotalTransactions)
	assert.Equal(t, int64(37500), resp.AverageSale)
	require.Len(t, resp.TopProducts, 1)
	assert.Equal(t, "Nasi Goreng", resp.TopProducts[0].ProductName)
	assert.Greater(t, repo.lastEnd, repo.lastStart)
}

func TestGetSalesReport_NoTransactions(t *testing.T) {
	svc := CreateReportService(&fakeReportRepository{})

	resp, err := svc.GetSalesReport(context.Background(), dto.ReportFilter{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.AverageSale)
}

func TestGetSalesReport_Validation(t *testing.T) {
	svc := CreateReportService(&fakeReportRepository{})

	testCases := []struct {
		Name   string
		Filter dto.ReportFilter
	}{
		{Name: "Missing dates", Filter: dto.ReportFilter{}},
		{Name: "Missing end date", Filter: dto.ReportFilter{StartDate: "2026-08-01"}},
		{Name: "Malformed start date", Filter: dto.ReportFilter{StartDate: "31-08-2026", EndDate: "2026-08-31"}},
		{Name: "End before start", Filter: dto.ReportFilter{StartDate: "2026-08-31", EndDate: "2026-08-01"}},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := svc.GetSalesReport(context.Background(), tc.Filter)
			assert.ErrorIs(t, err, errs.ErrClient)
		})
	}
}

func TestGetStockReport(t *testing.T) {
	repo := &fakeReportRepository{
		stockRecords: []dto.StockReportRecord{
			{ProductID: 3, ProductName: "Kerupuk", Stock: 0, LowStock: true},
			{ProductID: 1, ProductName: "Es Teh", Stock: 20, LowStock: false},
		},
	}
	svc := CreateReportService(repo)

	records, err := svc.GetStockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].LowStock)
	assert.Equal(t, int64(10), repo.lastThreshold)
}
