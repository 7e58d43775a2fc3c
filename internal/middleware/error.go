package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"garasiku/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// domainStatus maps the transfer error taxonomy to HTTP. Everything in the
// taxonomy is recoverable; nothing here is fatal to the process.
func domainStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrSelfTransfer):
		return fiber.StatusBadRequest, "SELF_TRANSFER", true
	case errors.Is(err, domain.ErrNotOwner):
		return fiber.StatusForbidden, "NOT_OWNER", true
	case errors.Is(err, domain.ErrTransferAlreadyPending):
		return fiber.StatusConflict, "TRANSFER_ALREADY_PENDING", true
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", true
	case errors.Is(err, domain.ErrNotRecipient):
		return fiber.StatusForbidden, "NOT_RECIPIENT", true
	case errors.Is(err, domain.ErrAlreadyResolved):
		return fiber.StatusConflict, "ALREADY_RESOLVED", true
	case errors.Is(err, domain.ErrRequestExpired):
		return fiber.StatusGone, "REQUEST_EXPIRED", true
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return fiber.StatusConflict, "CONCURRENCY_CONFLICT", true
	}
	return 0, "", false
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	if status, domainCode, ok := domainStatus(err); ok {
		code = status
		errorCode = domainCode
		message = err.Error()
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message

		switch code {
		case fiber.StatusBadRequest:
			errorCode = "BAD_REQUEST"
		case fiber.StatusUnauthorized:
			errorCode = "UNAUTHORIZED"
		case fiber.StatusForbidden:
			errorCode = "FORBIDDEN"
		case fiber.StatusNotFound:
			errorCode = "NOT_FOUND"
		case fiber.StatusConflict:
			errorCode = "CONFLICT"
		case fiber.StatusUnprocessableEntity:
			errorCode = "VALIDATION_ERROR"
		}
	}

	traceID := uuid.New().String()[:8]

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
