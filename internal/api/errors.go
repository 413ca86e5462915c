package api

import (
	"errors"
	"net/http"

	"github.com/tournevent/ordertrack/pkg/orders"
)

// StatusCode maps a lookup error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, orders.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, orders.ErrOrderNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the client-facing message for err.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, orders.ErrInvalidInput):
		return orders.ErrInvalidInput.Error()
	case errors.Is(err, orders.ErrOrderNotFound):
		return "Order not found"
	default:
		return err.Error()
	}
}
