// Package common holds the response envelope, RFC 9457 problem responses,
// request binding, and the domain-error to status-code mapping shared by all
// webapi sub-packages.
package common

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	groupdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	txdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	userdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/user"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem response. The status defaults
// to ErrorToStatusCode(err); trailing arguments may override the detail text
// (string) or the status code (int). Unmapped errors resolve to 500 and are
// logged server-side only; the client gets a fixed generic detail, never the
// underlying cause.
func ProblemDetailsJSON(
	c *fiber.Ctx,
	title string,
	err error,
	overrides ...any,
) error {
	status := fiber.StatusInternalServerError
	if err != nil {
		status = ErrorToStatusCode(err)
	}
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	var detail string
	for _, o := range overrides {
		switch v := o.(type) {
		case string:
			detail = v
		case int:
			pd.Status = v
		}
	}
	switch {
	case detail != "":
		pd.Detail = detail
	case pd.Status == fiber.StatusInternalServerError:
		pd.Detail = "An unexpected error occurred"
	case err != nil:
		pd.Detail = err.Error()
	}
	if err != nil && pd.Status == fiber.StatusInternalServerError {
		slog.Error("request failed",
			"title", title,
			"path", c.OriginalURL(),
			"error", err,
		)
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(pd.Status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, groupdomain.ErrGroupNotFound),
		errors.Is(err, txdomain.ErrTransactionNotFound),
		errors.Is(err, userdomain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, userdomain.ErrUserUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, groupdomain.ErrNotMember),
		errors.Is(err, groupdomain.ErrNotOwner),
		errors.Is(err, groupdomain.ErrPersonalGroupImmutable):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, groupdomain.ErrEmptyName),
		errors.Is(err, txdomain.ErrNegativeAmount),
		errors.Is(err, txdomain.ErrInvalidType),
		errors.Is(err, txdomain.ErrInvalidStatus):
		return fiber.StatusBadRequest
	case errors.Is(err, txdomain.ErrAlreadyPaid),
		errors.Is(err, txdomain.ErrAccountCardExclusive),
		errors.Is(err, domain.ErrInsufficientBalance):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. Returns the populated struct, or writes an error
// response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ProblemDetailsJSON(c, "Invalid request body", nil, err.Error(), fiber.StatusBadRequest)
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		_ = ProblemDetailsJSON(c, "Validation failed", nil, err.Error(), fiber.StatusBadRequest)
		return nil, err
	}
	return &input, nil
}
