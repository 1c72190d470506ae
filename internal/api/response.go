package api

import (
	"errors"
	"net/http"

	"StockTerminal/internal/calculator"
	"StockTerminal/internal/collector"

	"github.com/labstack/echo/v4"
)

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError is one failed request field.
type ValidationError struct {
	Code    string                 `json:"code,omitempty"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// DataResponse writes data with the given status.
func DataResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, APIResponse{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
		Data:    data,
	})
}

// SuccessResponse writes a 200 response.
func SuccessResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusOK, data)
}

// CreatedResponse writes a 201 response.
func CreatedResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusCreated, data)
}

// BadRequestResponse writes a 400 response.
func BadRequestResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusBadRequest, data)
}

// NotFoundResponse writes a 404 response.
func NotFoundResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusNotFound, data)
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	var insufficient *calculator.InsufficientDataError
	var malformed *calculator.MalformedBarError
	switch {
	case errors.Is(err, collector.ErrEmptySymbol):
		return http.StatusBadRequest
	case errors.Is(err, collector.ErrNoData):
		return http.StatusNotFound
	case errors.As(err, &insufficient), errors.As(err, &malformed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// ErrorResponse writes err with the status StatusFor picks.
func ErrorResponse(c echo.Context, err error) error {
	return DataResponse(c, StatusFor(err), err.Error())
}
