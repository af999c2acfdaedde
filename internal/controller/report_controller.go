package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/warunggenz/pos-backend/internal/dto"
	"github.com/warunggenz/pos-backend/internal/middleware"
	"github.com/warunggenz/pos-backend/internal/service"
	pkgdto "github.com/warunggenz/pos-backend/pkg/dto"
	"github.com/warunggenz/pos-backend/pkg/errs"
)

type ReportController struct {
	service service.ReportService
}

func CreateReportController(e *echo.Group, service service.ReportService, isLoggedIn echo.MiddlewareFunc) {
	c := ReportController{
		service: service,
	}

	e.GET("/reports/sales", c.GetSalesReport, isLoggedIn, middleware.RequireStaff)
	e.GET("/reports/stock", c.GetStockReport, isLoggedIn, middleware.RequireStaff)
}

func (c *ReportController) GetSalesReport(e echo.Context) error {
	filter := dto.ReportFilter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetSalesReport").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetSalesReport(e.Request().Context(), filter)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", resp)
}

func (c *ReportController) GetStockReport(e echo.Context) error {
	resp, err := c.service.GetStockReport(e.Request().Context())
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", resp)
}
