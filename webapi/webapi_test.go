package webapi_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	infracache "github.com/amirasaad/networth/infra/cache"
	infraeventbus "github.com/amirasaad/networth/infra/eventbus"
	"github.com/amirasaad/networth/pkg/app"
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/repository"
	"github.com/amirasaad/networth/pkg/testutils"
	"github.com/amirasaad/networth/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const password = "Str0ngPassw0rd"

type APITestSuite struct {
	suite.Suite
	uow repository.UnitOfWork
	app *app.App
	api *fiber.App
}

func newConfig() *config.App {
	return &config.App{
		TestMode:  true,
		Server:    &config.Server{RequestTimeout: 5 * time.Second},
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "api-secret", Algorithm: "HS256", ExpiryMinutes: 5}},
		RateCache: &config.RateCache{TTL: time.Minute},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
}

func newApp(t *testing.T, cfg *config.App) (*app.App, repository.UnitOfWork) {
	t.Helper()
	uow, _ := testutils.NewTestUoW(t)
	quotes := infracache.NewMemoryCache(0)
	t.Cleanup(quotes.Close)
	a := app.New(&app.Deps{
		Uow:       uow,
		RateCache: quotes,
		EventBus:  infraeventbus.NewWithMemory(testutils.Logger()),
		Logger:    testutils.Logger(),
	}, cfg)
	return a, uow
}

func (s *APITestSuite) SetupTest() {
	s.app, s.uow = newApp(s.T(), newConfig())
	s.api = webapi.SetupApp(s.app)
}

func (s *APITestSuite) do(method, path, body, token string) *http.Response {
	return testutils.MakeRequest(s.T(), s.api, method, path, body, token)
}

// data asserts the status and returns the envelope's data field.
func (s *APITestSuite) data(resp *http.Response, status int) any {
	s.T().Helper()
	body := testutils.DecodeBody(s.T(), resp)
	s.Require().Equal(status, resp.StatusCode, "body: %v", body)
	return body["data"]
}

func (s *APITestSuite) object(resp *http.Response, status int) map[string]any {
	s.T().Helper()
	obj, ok := s.data(resp, status).(map[string]any)
	s.Require().True(ok, "data is not an object")
	return obj
}

func (s *APITestSuite) problem(resp *http.Response, status int) map[string]any {
	s.T().Helper()
	s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	body := testutils.DecodeBody(s.T(), resp)
	s.Require().Equal(status, resp.StatusCode, "body: %v", body)
	return body
}

func (s *APITestSuite) register(username string) string {
	s.T().Helper()
	resp := s.do(fiber.MethodPost, "/register", fmt.Sprintf(
		`{"username":%q,"email":"%s@example.com","password":%q}`, username, username, password), "")
	data := s.object(resp, fiber.StatusCreated)
	s.Equal("bearer", data["token_type"])
	token, _ := data["access_token"].(string)
	s.Require().NotEmpty(token)
	return token
}

func (s *APITestSuite) currency(code string) string {
	return testutils.CurrencyID(s.T(), s.uow, code).String()
}

func (s *APITestSuite) assertDecimal(want string, got any) {
	s.T().Helper()
	raw, ok := got.(string)
	s.Require().True(ok, "expected a decimal string, got %T %v", got, got)
	s.True(decimal.RequireFromString(want).Equal(decimal.RequireFromString(raw)), "want %s, got %s", want, raw)
}

func (s *APITestSuite) TestRegisterAndLogin() {
	s.register("alice")

	resp := s.do(fiber.MethodPost, "/register", `{"username":"alice","email":"other@example.com","password":"`+password+`"}`, "")
	s.problem(resp, fiber.StatusConflict)

	resp = s.do(fiber.MethodPost, "/register", `{"username":"bob","email":"not-an-email","password":"`+password+`"}`, "")
	body := s.problem(resp, fiber.StatusUnprocessableEntity)
	s.NotEmpty(body["errors"])

	resp = s.do(fiber.MethodPost, "/register", `{"username":"bob","email":"bob@example.com","password":"`+password+`","base_currency":"XYZ"}`, "")
	s.problem(resp, fiber.StatusUnprocessableEntity)

	resp = s.do(fiber.MethodPost, "/login", `{"identity":"alice","password":"wrong"}`, "")
	body = s.problem(resp, fiber.StatusUnauthorized)
	s.Equal("Identity or password is incorrect", body["detail"])

	resp = s.do(fiber.MethodPost, "/login", `{"identity":"alice@example.com","password":"`+password+`"}`, "")
	data := s.object(resp, fiber.StatusOK)
	token, _ := data["access_token"].(string)

	resp = s.do(fiber.MethodGet, "/user", "", token)
	me := s.object(resp, fiber.StatusOK)
	s.Equal("alice", me["username"])
	s.Equal("USER", me["role"])
	s.NotContains(me, "password")
}

func (s *APITestSuite) TestAuthentication() {
	resp := s.do(fiber.MethodGet, "/wallets", "", "")
	s.problem(resp, fiber.StatusUnauthorized)

	resp = s.do(fiber.MethodGet, "/wallets", "", "garbage")
	s.problem(resp, fiber.StatusUnauthorized)

	token := s.register("carol")
	resp = s.do(fiber.MethodDelete, "/user", "", token)
	s.data(resp, fiber.StatusOK)

	resp = s.do(fiber.MethodGet, "/user", "", token)
	s.problem(resp, fiber.StatusUnauthorized)
}

func (s *APITestSuite) TestNetWorthFlow() {
	token := s.register("alice")
	usd, eur := s.currency("USD"), s.currency("EUR")

	resp := s.do(fiber.MethodPost, "/wallets", fmt.Sprintf(
		`{"name":"Checking","type":"fiat","balances":[{"currency_id":%q,"amount":"1000"}]}`, usd), token)
	wallet := s.object(resp, fiber.StatusCreated)
	walletID := wallet["id"].(string)
	s.assertDecimal("1000", wallet["total_value"])

	resp = s.do(fiber.MethodGet, "/wallets/total-value", "", token)
	total := s.object(resp, fiber.StatusOK)
	s.assertDecimal("1000", total["value"])
	s.Equal("USD", total["base_currency"])
	s.Equal("$1,000.00", total["display"])

	resp = s.do(fiber.MethodPost, "/assets", fmt.Sprintf(`{"name":"Car","value":"500","currency_id":%q}`, usd), token)
	s.data(resp, fiber.StatusCreated)

	resp = s.do(fiber.MethodPost, "/transactions", fmt.Sprintf(
		`{"type":"expense","from_wallet_id":%q,"currency_id":%q,"amount":"100","description":"groceries"}`, walletID, usd), token)
	s.data(resp, fiber.StatusCreated)

	resp = s.do(fiber.MethodPost, "/transactions", fmt.Sprintf(
		`{"type":"expense","from_wallet_id":%q,"currency_id":%q,"amount":"5000"}`, walletID, usd), token)
	s.problem(resp, fiber.StatusUnprocessableEntity)

	resp = s.do(fiber.MethodGet, "/user-app-data", "", token)
	summary := s.object(resp, fiber.StatusOK)["summary"].(map[string]any)
	s.assertDecimal("900", summary["wallets_value"])
	s.assertDecimal("500", summary["assets_value"])
	s.assertDecimal("1400", summary["net_worth"])

	resp = s.do(fiber.MethodPost, "/user-app-data/set-base/"+eur, "", token)
	body := s.problem(resp, fiber.StatusUnprocessableEntity)
	s.Contains(body["detail"], "exchange rate missing")

	resp = s.do(fiber.MethodPost, "/currency-exchanges", fmt.Sprintf(
		`{"from_currency_id":%q,"to_currency_id":%q,"rate":"0.5"}`, usd, eur), token)
	s.data(resp, fiber.StatusCreated)

	resp = s.do(fiber.MethodPost, "/currency-exchanges", fmt.Sprintf(
		`{"from_currency_id":%q,"to_currency_id":%q,"rate":"2"}`, eur, usd), token)
	s.problem(resp, fiber.StatusUnprocessableEntity)

	resp = s.do(fiber.MethodGet, "/currency-exchanges/rate?from="+eur+"&to="+usd, "", token)
	quote := s.object(resp, fiber.StatusOK)
	s.assertDecimal("2", quote["rate"])

	resp = s.do(fiber.MethodPost, "/user-app-data/set-base/"+eur, "", token)
	changed := s.object(resp, fiber.StatusOK)
	s.Equal(eur, changed["base_currency_id"])
	s.assertDecimal("450", changed["wallets_value"])
	s.assertDecimal("250", changed["assets_value"])
	s.assertDecimal("700", changed["net_worth"])

	resp = s.do(fiber.MethodGet, "/transactions/filter?type=expense&page_size=10", "", token)
	page := s.object(resp, fiber.StatusOK)
	s.EqualValues(1, page["total"])
	s.Len(page["items"], 1)

	resp = s.do(fiber.MethodGet, "/transactions/statistics", "", token)
	stats := s.object(resp, fiber.StatusOK)
	s.EqualValues(1, stats["count"])

	resp = s.do(fiber.MethodGet, "/transactions/export", "", token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get(fiber.HeaderContentType), "spreadsheetml")
	s.Contains(resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")
	workbook, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(string(workbook), "PK"), "xlsx is a zip archive")
}

func (s *APITestSuite) TestWalletBalances() {
	token := s.register("alice")
	usd, btc := s.currency("USD"), s.currency("BTC")

	resp := s.do(fiber.MethodPost, "/wallets", `{"name":"Cash","type":"fiat"}`, token)
	walletID := s.object(resp, fiber.StatusCreated)["id"].(string)

	resp = s.do(fiber.MethodPost, "/wallets/"+walletID+"/currency-balance", fmt.Sprintf(`{"currency_id":%q,"amount":"40"}`, usd), token)
	s.data(resp, fiber.StatusCreated)

	resp = s.do(fiber.MethodPost, "/wallets/"+walletID+"/currency-balance", fmt.Sprintf(`{"currency_id":%q,"amount":"1"}`, btc), token)
	s.problem(resp, fiber.StatusUnprocessableEntity)

	resp = s.do(fiber.MethodPut, "/wallets/"+walletID+"/currency-balance/"+usd, `{"amount":"75"}`, token)
	s.assertDecimal("75", s.object(resp, fiber.StatusOK)["total_value"])

	resp = s.do(fiber.MethodDelete, "/wallets/"+walletID+"/currency-balance/"+usd, "", token)
	s.assertDecimal("0", s.object(resp, fiber.StatusOK)["total_value"])

	resp = s.do(fiber.MethodPut, "/wallets/"+walletID, `{"name":"Pocket"}`, token)
	s.Equal("Pocket", s.object(resp, fiber.StatusOK)["name"])

	resp = s.do(fiber.MethodDelete, "/wallets/"+walletID, "", token)
	s.data(resp, fiber.StatusOK)
	resp = s.do(fiber.MethodGet, "/wallets/"+walletID, "", token)
	s.problem(resp, fiber.StatusNotFound)
}

func (s *APITestSuite) TestOwnershipIsolation() {
	alice := s.register("alice")
	bob := s.register("bob")

	resp := s.do(fiber.MethodPost, "/wallets", `{"name":"Private","type":"fiat"}`, alice)
	walletID := s.object(resp, fiber.StatusCreated)["id"].(string)

	resp = s.do(fiber.MethodGet, "/wallets/"+walletID, "", bob)
	s.problem(resp, fiber.StatusNotFound)
	resp = s.do(fiber.MethodDelete, "/wallets/"+walletID, "", bob)
	s.problem(resp, fiber.StatusNotFound)

	resp = s.do(fiber.MethodGet, "/wallets", "", bob)
	s.Empty(s.data(resp, fiber.StatusOK))
}

func (s *APITestSuite) TestRegistry() {
	token := s.register("alice")

	resp := s.do(fiber.MethodPost, "/currencies", `{"code":"gld","name":"Gold","symbol":"Au","currency_type":"crypto"}`, token)
	gld := s.object(resp, fiber.StatusCreated)
	s.Equal("GLD", gld["code"])

	resp = s.do(fiber.MethodGet, "/currencies", "", token)
	s.Len(s.data(resp, fiber.StatusOK), 16)

	resp = s.do(fiber.MethodDelete, "/currencies/"+s.currency("USD"), "", token)
	s.problem(resp, fiber.StatusUnprocessableEntity)

	resp = s.do(fiber.MethodDelete, "/currencies/"+gld["id"].(string), "", token)
	s.data(resp, fiber.StatusOK)

	resp = s.do(fiber.MethodPost, "/categories", `{"name":"Dividends","type":"income"}`, token)
	category := s.object(resp, fiber.StatusCreated)
	s.Equal("income", category["type"])

	resp = s.do(fiber.MethodPut, "/categories/"+category["id"].(string), `{"name":"Coupons"}`, token)
	s.Equal("Coupons", s.object(resp, fiber.StatusOK)["name"])

	resp = s.do(fiber.MethodPost, "/asset-types", `{"name":"Watches"}`, token)
	s.data(resp, fiber.StatusCreated)

	resp = s.do(fiber.MethodGet, "/asset-types", "", token)
	s.Len(s.data(resp, fiber.StatusOK), 6)
}

func (s *APITestSuite) TestInvalidInput() {
	token := s.register("alice")

	resp := s.do(fiber.MethodPost, "/wallets", `{"name":"Vault","type":"metal"}`, token)
	body := s.problem(resp, fiber.StatusUnprocessableEntity)
	s.Equal([]any{map[string]any{"field": "type", "reason": "must be one of fiat crypto"}}, body["errors"])

	resp = s.do(fiber.MethodPost, "/wallets", `{"name":`, token)
	s.problem(resp, fiber.StatusBadRequest)

	resp = s.do(fiber.MethodGet, "/wallets/not-a-uuid", "", token)
	s.problem(resp, fiber.StatusBadRequest)

	resp = s.do(fiber.MethodGet, "/transactions/filter?date_from=yesterday", "", token)
	s.problem(resp, fiber.StatusUnprocessableEntity)

	resp = s.do(fiber.MethodGet, "/no-such-route", "", token)
	body = s.problem(resp, fiber.StatusNotFound)
	s.Equal("Not Found", body["title"])
}

func (s *APITestSuite) TestAdminGuard() {
	token := s.register("alice")
	resp := s.do(fiber.MethodGet, "/admin/users", "", token)
	s.problem(resp, fiber.StatusForbidden)

	admin, err := s.app.UserService.CreateAdmin(context.Background(), "root", "root@example.com", password, "USD")
	s.Require().NoError(err)
	adminToken, err := s.app.AuthService.GenerateToken(admin)
	s.Require().NoError(err)

	resp = s.do(fiber.MethodGet, "/admin/users?page=1&page_size=1", "", adminToken)
	page := s.object(resp, fiber.StatusOK)
	s.EqualValues(2, page["total"])
	s.Len(page["items"], 1)

	resp = s.do(fiber.MethodPost, "/admin/users/"+admin.ID.String()+"/recompute", "", adminToken)
	s.assertDecimal("0", s.object(resp, fiber.StatusOK)["net_worth"])
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func TestRateLimit(t *testing.T) {
	cfg := newConfig()
	cfg.RateLimit = &config.RateLimit{MaxRequests: 2, Window: time.Minute}
	a, _ := newApp(t, cfg)
	api := webapi.SetupApp(a)

	send := func(ip string) int {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		resp, err := api.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		_ = resp.Body.Close()
		return resp.StatusCode
	}

	for i := 0; i < 2; i++ {
		if got := send("203.0.113.7"); got != fiber.StatusOK {
			t.Fatalf("request %d: got %d", i+1, got)
		}
	}
	if got := send("203.0.113.7"); got != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", got)
	}
	if got := send("198.51.100.2"); got != fiber.StatusOK {
		t.Fatalf("other client limited: got %d", got)
	}
}

func (s *APITestSuite) TestTransactionCategoryClear() {
	token := s.register("dana")
	usd := s.currency("USD")
	groceries := testutils.CategoryID(s.T(), s.uow, "Groceries").String()

	resp := s.do(fiber.MethodPost, "/wallets", fmt.Sprintf(
		`{"name":"Cash","type":"fiat","balances":[{"currency_id":%q,"amount":"100"}]}`, usd), token)
	walletID := s.object(resp, fiber.StatusCreated)["id"].(string)

	resp = s.do(fiber.MethodPost, "/transactions", fmt.Sprintf(
		`{"type":"expense","from_wallet_id":%q,"category_id":%q,"currency_id":%q,"amount":"10"}`, walletID, groceries, usd), token)
	txID := s.object(resp, fiber.StatusCreated)["id"].(string)

	resp = s.do(fiber.MethodPut, "/transactions/"+txID, `{"description":"market"}`, token)
	tx := s.object(resp, fiber.StatusOK)
	s.Equal(groceries, tx["category_id"])

	resp = s.do(fiber.MethodPut, "/transactions/"+txID, `{"category_id":null}`, token)
	tx = s.object(resp, fiber.StatusOK)
	s.NotContains(tx, "category_id")

	resp = s.do(fiber.MethodPut, "/transactions/"+txID, `{"category_id":"not-a-uuid"}`, token)
	s.problem(resp, fiber.StatusBadRequest)
}
