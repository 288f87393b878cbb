package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, fiber.StatusNotFound},
		{fmt.Errorf("wallet: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{domain.ErrAlreadyExists, fiber.StatusConflict},
		{domain.NewValidationError("name", "is required"), fiber.StatusUnprocessableEntity},
		{domain.ErrInUse, fiber.StatusUnprocessableEntity},
		{domain.ErrImmutable, fiber.StatusUnprocessableEntity},
		{domain.ErrInsufficientBalance, fiber.StatusUnprocessableEntity},
		{&domain.ExchangeRateMissingError{From: "GLD", To: "USD"}, fiber.StatusUnprocessableEntity},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{domain.ErrUnavailable, fiber.StatusServiceUnavailable},
		{&domain.RegistrationRollbackError{Cause: domain.ErrUnavailable}, fiber.StatusServiceUnavailable},
		{fiber.NewError(fiber.StatusBadRequest, "bad"), fiber.StatusBadRequest},
		{errors.New("boom"), fiber.StatusInternalServerError},
		{nil, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorToStatusCode(tt.err), "%v", tt.err)
	}
}

func problem(t *testing.T, resp *http.Response) ProblemDetails {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	var pd ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

func TestProblemDetailsJSON(t *testing.T) {
	app := fiber.New()
	app.Get("/validation", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Invalid wallet", domain.NewValidationError("name", "is required"))
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Internal Server Error", errors.New("pq: password authentication failed"))
	})
	app.Get("/override", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Too Many Requests", nil, "slow down", fiber.StatusTooManyRequests)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/validation", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	pd := problem(t, resp)
	assert.Equal(t, "Invalid wallet", pd.Title)
	assert.Equal(t, "/validation", pd.Instance)
	assert.Contains(t, pd.Detail, "name")
	assert.NotNil(t, pd.Errors)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	pd = problem(t, resp)
	assert.Equal(t, internalDetail, pd.Detail)
	assert.NotContains(t, pd.Detail, "password")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/override", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "slow down", problem(t, resp).Detail)
}

type walletInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type" validate:"required,oneof=fiat crypto"`
}

func TestBindAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		input, err := BindAndValidate[walletInput](c)
		if input == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "ok", input)
	})
	send := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := send(`{"name":"Cash","type":"fiat"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"ok","data":{"name":"Cash","type":"fiat"}}`, string(body))

	resp = send(`{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", problem(t, resp).Title)

	resp = send(`{"name":"Cash","type":"metal"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	pd := problem(t, resp)
	raw, err := json.Marshal(pd.Errors)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"field":"type","reason":"must be one of fiat crypto"}]`, string(raw))
}

func TestQueryHelpers(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		page, size, err := Page(c)
		if err != nil {
			return ProblemDetailsJSON(c, "Invalid query", err)
		}
		id, err := QueryUUID(c, "wallet_id")
		if err != nil {
			return ProblemDetailsJSON(c, "Invalid query", err)
		}
		from, err := QueryTime(c, "date_from")
		if err != nil {
			return ProblemDetailsJSON(c, "Invalid query", err)
		}
		min, err := QueryDecimal(c, "min_amount")
		if err != nil {
			return ProblemDetailsJSON(c, "Invalid query", err)
		}
		return c.JSON(fiber.Map{
			"page": page, "size": size,
			"wallet": id != nil, "from": from != nil, "min": min != nil,
		})
	})
	get := func(query string) *http.Response {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+query, nil))
		require.NoError(t, err)
		return resp
	}

	resp := get("")
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"page":1,"size":20,"wallet":false,"from":false,"min":false}`, string(body))

	resp = get("?page=2&page_size=5&wallet_id=7b0a4b4e-6a36-4a0d-9d0b-6a2f7e9c1c11&date_from=2024-01-31&min_amount=1.5")
	body, _ = io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"page":2,"size":5,"wallet":true,"from":true,"min":true}`, string(body))

	for _, q := range []string{"?page=0", "?page_size=500", "?wallet_id=nope", "?date_from=31/01/2024", "?min_amount=abc"} {
		assert.Equal(t, fiber.StatusUnprocessableEntity, get(q).StatusCode, q)
	}
}
