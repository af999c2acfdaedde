package errs

import (
	"errors"
	"net/http"
)

var (
	ErrInternalServer      = errors.New("Internal server error")
	ErrClient              = errors.New("Bad request")
	ErrNotLoggedIn         = errors.New("Unauthorized access")
	ErrForbidden           = errors.New("Forbidden access")
	ErrNotFound            = errors.New("Resource not found")
	ErrProductNotFound     = errors.New("Product not found")
	ErrInsufficientStock   = errors.New("Insufficient product stock")
	ErrInsufficientPayment = errors.New("Paid amount is less than the total amount")
	ErrAlreadyConfirmed    = errors.New("Transaction has already been confirmed")
	ErrConflict            = errors.New("Conflicting record found")
	ErrExternalService     = errors.New("Payment gateway request failed")
)

var errorMap = map[error]int{
	ErrInternalServer:      http.StatusInternalServerError,
	ErrClient:              http.StatusBadRequest,
	ErrNotLoggedIn:         http.StatusUnauthorized,
	ErrForbidden:           http.StatusForbidden,
	ErrNotFound:            http.StatusNotFound,
	ErrProductNotFound:     http.StatusBadRequest,
	ErrInsufficientStock:   http.StatusBadRequest,
	ErrInsufficientPayment: http.StatusBadRequest,
	ErrAlreadyConfirmed:    http.StatusBadRequest,
	ErrConflict:            http.StatusConflict,
	ErrExternalService:     http.StatusBadGateway,
}

func GetErrorStatusCode(err error) int {
	for sentinel, statusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return statusCode
		}
	}
	return http.StatusInternalServerError
}
