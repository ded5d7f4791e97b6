package handler

import (
	"errors"
	"net/http"

	"github.com/boxmate/backend/internal/repository"
	"github.com/boxmate/backend/internal/service"
	"github.com/labstack/echo/v4"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// serviceError maps service sentinels onto the wire. Unrecognized errors are
// reported as a generic internal failure; the message never leaks storage or
// database detail to the client.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "not found"))
	case errors.Is(err, service.ErrItemSold):
		return c.JSON(http.StatusConflict, NewErrorResponse("item_sold", "item is sold and can no longer be edited"))
	case errors.Is(err, service.ErrAlreadySold):
		return c.JSON(http.StatusConflict, NewErrorResponse("already_sold", "item is already sold"))
	case errors.Is(err, service.ErrAlreadyPublished):
		return c.JSON(http.StatusConflict, NewErrorResponse("already_published", "ad is already published"))
	case errors.Is(err, repository.ErrDBNotReady):
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "service is starting up"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "operation failed"))
	}
}
