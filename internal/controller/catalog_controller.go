package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/warunggenz/pos-backend/internal/service"
	pkgdto "github.com/warunggenz/pos-backend/pkg/dto"
	"github.com/warunggenz/pos-backend/pkg/errs"
)

type CatalogController struct {
	service service.CatalogService
}

func CreateCatalogController(e *echo.Group, service service.CatalogService) {
	c := CatalogController{
		service: service,
	}

	e.GET("/products", c.GetProducts)
	e.GET("/products/:id", c.GetProductByID)
}

func (c *CatalogController) GetProducts(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetProducts").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetProducts(e.Request().Context(), filter)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", resp)
}

func (c *CatalogController) GetProductByID(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetProductByID(e.Request().Context(), id)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", resp)
}
