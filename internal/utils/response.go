package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liviin/homecare-api/internal/types"
)

// ErrorResponse sends a standard error response envelope.
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// DomainErrorResponse maps a domain error kind to its HTTP status and
// renders the standard envelope. Validation errors carry every field
// violation found.
func DomainErrorResponse(c *fiber.Ctx, err error, errorType string) error {
	var status int
	switch types.KindOf(err) {
	case types.KindValidation, types.KindInvalidArgument:
		status = fiber.StatusBadRequest
	case types.KindNotFound:
		status = fiber.StatusNotFound
	case types.KindReferenceNotFound:
		status = fiber.StatusUnprocessableEntity
	case types.KindStoreUnavailable:
		status = fiber.StatusServiceUnavailable
	default:
		status = fiber.StatusInternalServerError
	}

	payload := fiber.Map{
		"status":    status,
		"message":   err.Error(),
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	}
	if derr, ok := err.(*types.Error); ok && len(derr.Violations) > 0 {
		payload["violations"] = derr.Violations
	}

	return c.Status(status).JSON(payload)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status     int                    `json:"status"`
	Message    string                 `json:"message"`
	Ok         bool                   `json:"ok"`
	Timestamp  string                 `json:"timestamp"`
	URL        string                 `json:"url"`
	Type       string                 `json:"type,omitempty"`
	Violations []types.FieldViolation `json:"violations,omitempty"`
}

// DeletedResponse sends the success envelope for a delete.
func DeletedResponse(c *fiber.Ctx, entity string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   entity + " deleted successfully",
		"ok":        true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
