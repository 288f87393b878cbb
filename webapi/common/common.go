// Package common holds the response envelopes and request binding shared by
// the HTTP handlers.
package common

import (
	"errors"
	"reflect"
	"strings"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Response defines the standard API response structure for success cases.
type Response struct {
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
	Errors   any    `json:"errors,omitempty"`   // Field level validation errors
}

const internalDetail = "An unexpected error occurred"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SuccessResponseJSON writes the success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Message: message, Data: data})
}

// ProblemDetailsJSON writes err as problem details. The status is derived
// from err unless an int option overrides it; a string option overrides the
// detail. Details of 5xx errors are never taken from err.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, opts ...any) error {
	status := ErrorToStatusCode(err)
	detail := ""
	for _, opt := range opts {
		switch v := opt.(type) {
		case int:
			status = v
		case string:
			detail = v
		}
	}

	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Instance: c.OriginalURL(),
	}
	switch {
	case detail != "":
		pd.Detail = detail
	case status >= fiber.StatusInternalServerError:
		pd.Detail = internalDetail
	case err != nil:
		pd.Detail = errorDetail(err)
	}
	if fieldErrors := FieldErrors(err); len(fieldErrors) > 0 {
		pd.Errors = fieldErrors
	}
	if status >= fiber.StatusInternalServerError && err != nil {
		log.Errorw("request failed", "path", c.Path(), "status", status, "error", err)
	}

	return c.Status(status).JSON(pd, problemContentType)
}

const problemContentType = "application/problem+json"

func errorDetail(err error) string {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}

// FieldErrors extracts per-field validation failures from err.
func FieldErrors(err error) []domain.ValidationError {
	var ve *domain.ValidationError
	if errors.As(err, &ve) && ve.Field != "" {
		return []domain.ValidationError{*ve}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]domain.ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, domain.ValidationError{Field: fieldPath(fe), Reason: reason(fe)})
		}
		return out
	}
	return nil
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	}
	return "failed " + fe.Tag() + " check"
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrImmutable),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrExchangeRateMissing):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, "Request body could not be parsed", fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, "Request body failed validation", fiber.StatusUnprocessableEntity)
	}
	return &input, nil
}
