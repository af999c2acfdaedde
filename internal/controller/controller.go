package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/warunggenz/pos-backend/internal/dto"
	"github.com/warunggenz/pos-backend/internal/middleware"
	"github.com/warunggenz/pos-backend/internal/service"
	pkgdto "github.com/warunggenz/pos-backend/pkg/dto"
	"github.com/warunggenz/pos-backend/pkg/errs"
)

type Controller struct {
	service service.OrderService
}

func CreateOrderController(e *echo.Group, service service.OrderService, isLoggedIn echo.MiddlewareFunc, optionalAuth echo.MiddlewareFunc) {
	c := Controller{
		service: service,
	}

	e.POST("/orders", c.CreateOrder, isLoggedIn)
	e.POST("/checkout", c.Checkout, isLoggedIn)
	e.POST("/payments", c.CreateGatewayOrder, optionalAuth)
	e.POST("/payments/notifications", c.PaymentNotificationWebhook)
	e.GET("/transactions", c.GetTransactions, isLoggedIn)
	e.GET("/transactions/:id", c.GetTransaction, isLoggedIn)
	e.POST("/transactions/:id/confirm", c.ConfirmTransaction, isLoggedIn, middleware.RequireStaff)
	e.GET("/public/transactions", c.GetTransactionByOrderID)
}

func (c *Controller) CreateOrder(e echo.Context) error {
	payload := dto.OrderRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "CreateOrder").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.CreateOrder(e.Request().Context(), middleware.ExtractActor(e), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "Transaction created", resp)
}

func (c *Controller) Checkout(e echo.Context) error {
	payload := dto.CheckoutRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Checkout").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.Checkout(e.Request().Context(), middleware.ExtractActor(e), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "Order created, waiting for cashier confirmation", resp)
}

func (c *Controller) CreateGatewayOrder(e echo.Context) error {
	payload := dto.PaymentRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "CreateGatewayOrder").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.CreateGatewayOrder(e.Request().Context(), middleware.ExtractActor(e), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) PaymentNotificationWebhook(e echo.Context) error {
	payload := dto.PaymentNotification{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "PaymentNotificationWebhook").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	err = c.service.HandlePaymentNotification(e.Request().Context(), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "OK", nil)
}

func (c *Controller) GetTransactions(e echo.Context) error {
	filter := dto.TransactionFilter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetTransactions").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetTransactions(e.Request().Context(), middleware.ExtractActor(e), filter)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) GetTransaction(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetTransaction(e.Request().Context(), middleware.ExtractActor(e), id)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) ConfirmTransaction(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.ConfirmTransaction(e.Request().Context(), middleware.ExtractActor(e), id)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "Transaction confirmed", resp)
}

func (c *Controller) GetTransactionByOrderID(e echo.Context) error {
	resp, err := c.service.GetTransactionByOrderID(e.Request().Context(), e.QueryParam("order_id"))
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", resp)
}
