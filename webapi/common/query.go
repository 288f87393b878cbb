package common

import (
	"strconv"
	"time"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParamUUID parses the named path parameter.
func ParamUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" must be a valid UUID")
	}
	return id, nil
}

// QueryUUID parses an optional query parameter. A missing key yields nil.
func QueryUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError(key, "must be a valid UUID")
	}
	return &id, nil
}

// QueryDecimal parses an optional decimal query parameter.
func QueryDecimal(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.NewValidationError(key, "must be a decimal number")
	}
	return &d, nil
}

// QueryTime parses an optional RFC 3339 timestamp or a YYYY-MM-DD date.
func QueryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, domain.NewValidationError(key, "must be an RFC 3339 timestamp or a YYYY-MM-DD date")
}

// Page reads page and page_size. Page numbers start at 1.
func Page(c *fiber.Ctx) (page, pageSize int, err error) {
	page, pageSize = 1, DefaultPageSize
	if raw := c.Query("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil || page < 1 {
			return 0, 0, domain.NewValidationError("page", "must be a positive integer")
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if pageSize, err = strconv.Atoi(raw); err != nil || pageSize < 1 || pageSize > MaxPageSize {
			return 0, 0, domain.NewValidationError("page_size", "must be between 1 and "+strconv.Itoa(MaxPageSize))
		}
	}
	return page, pageSize, nil
}

// Paginated wraps a page of rows with the total match count.
type Paginated[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
