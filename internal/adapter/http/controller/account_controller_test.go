package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/api-sage/bank-account-ledger/internal/adapter/http/controller"
	"github.com/api-sage/bank-account-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-account-ledger/internal/adapter/repository/memory"
	"github.com/api-sage/bank-account-ledger/internal/commons"
	"github.com/api-sage/bank-account-ledger/internal/domain"
	"github.com/api-sage/bank-account-ledger/internal/usecase/services"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	store.SeedRate(domain.Rate{
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Rate:         decimal.RequireFromString("0.5"),
		RateDate:     time.Now().UTC(),
	})

	converter := services.NewRateService(store, nil, 0)
	ledger := services.NewLedgerService(store, store, store, converter, "EUR")

	r := chi.NewRouter()
	controller.NewAccountController(ledger).RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeAccount(t *testing.T, rec *httptest.ResponseRecorder) models.AccountResponse {
	t.Helper()

	var envelope commons.Response[models.AccountResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "expected success envelope, got %s", rec.Body.String())
	require.NotNil(t, envelope.Data)
	return *envelope.Data
}

func createAccount(t *testing.T, handler http.Handler, body string) models.AccountResponse {
	t.Helper()

	rec := doRequest(t, handler, http.MethodPost, "/accounts", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeAccount(t, rec)
}

func TestCreateAccountEndpoint(t *testing.T) {
	handler := newTestRouter(t)

	account := createAccount(t, handler, `{"initialAmount":"123.45","currency":"USD"}`)
	assert.Equal(t, "123.4500", account.Balance)
	assert.Equal(t, "USD", account.Currency)
	assert.NotZero(t, account.ID)
}

func TestCreateAccountEndpointDefaultsCurrency(t *testing.T) {
	handler := newTestRouter(t)

	account := createAccount(t, handler, `{}`)
	assert.Equal(t, "0.0000", account.Balance)
	assert.Equal(t, "EUR", account.Currency)
}

func TestCreateAccountEndpointValidation(t *testing.T) {
	handler := newTestRouter(t)

	rec := doRequest(t, handler, http.MethodPost, "/accounts", `{"initialAmount":"-5","currency":"EUR"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/accounts", `{"initialAmount":"10"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDepositAndWithdrawEndpoints(t *testing.T) {
	handler := newTestRouter(t)
	account := createAccount(t, handler, `{}`)
	base := "/accounts/" + strconv.FormatInt(account.ID, 10)

	rec := doRequest(t, handler, http.MethodPost, base+"/deposit", `{"amount":"200.00","currency":"EUR"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "200.0000", decodeAccount(t, rec).Balance)

	rec = doRequest(t, handler, http.MethodPost, base+"/withdraw", `{"amount":"50.00","currency":"EUR"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "150.0000", decodeAccount(t, rec).Balance)
}

func TestDepositEndpointConvertsCurrency(t *testing.T) {
	handler := newTestRouter(t)
	account := createAccount(t, handler, `{}`)
	base := "/accounts/" + strconv.FormatInt(account.ID, 10)

	rec := doRequest(t, handler, http.MethodPost, base+"/deposit", `{"amount":"100.00","currency":"USD"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeAccount(t, rec)
	assert.Equal(t, "50.0000", updated.Balance)
	assert.Equal(t, "EUR", updated.Currency)
}

func TestWithdrawEndpointInsufficientFunds(t *testing.T) {
	handler := newTestRouter(t)
	account := createAccount(t, handler, `{}`)
	base := "/accounts/" + strconv.FormatInt(account.ID, 10)

	rec := doRequest(t, handler, http.MethodPost, base+"/withdraw", `{"amount":"10.00","currency":"EUR"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var envelope commons.Response[models.AccountResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
}

func TestDepositEndpointUnknownRate(t *testing.T) {
	handler := newTestRouter(t)
	account := createAccount(t, handler, `{}`)
	base := "/accounts/" + strconv.FormatInt(account.ID, 10)

	rec := doRequest(t, handler, http.MethodPost, base+"/deposit", `{"amount":"1000","currency":"JPY"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetAccountEndpointNotFound(t *testing.T) {
	handler := newTestRouter(t)

	rec := doRequest(t, handler, http.MethodGet, "/accounts/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/accounts/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAccountEndpoint(t *testing.T) {
	handler := newTestRouter(t)
	account := createAccount(t, handler, `{"initialAmount":"100.00","currency":"EUR"}`)
	base := "/accounts/" + strconv.FormatInt(account.ID, 10)

	rec := doRequest(t, handler, http.MethodPut, base, `{"targetAmount":"180.00","currency":"EUR"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "180.0000", decodeAccount(t, rec).Balance)
}

func TestStatementEndpoint(t *testing.T) {
	handler := newTestRouter(t)
	account := createAccount(t, handler, `{}`)
	base := "/accounts/" + strconv.FormatInt(account.ID, 10)

	rec := doRequest(t, handler, http.MethodPost, base+"/deposit", `{"amount":"200.00","currency":"EUR"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, handler, http.MethodPost, base+"/withdraw", `{"amount":"50.00","currency":"EUR"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, base+"/statement", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope commons.Response[[]models.OperationResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)

	operations := *envelope.Data
	require.Len(t, operations, 2)
	assert.Equal(t, "DEPOSIT", operations[0].Type)
	assert.Equal(t, "200.0000", operations[0].Amount)
	assert.Equal(t, "WITHDRAWAL", operations[1].Type)
	assert.Equal(t, "-50.0000", operations[1].Amount)
	assert.Equal(t, "150.0000", operations[1].BalanceAfter)
}

func TestStatementEndpointUnknownAccountIsEmpty(t *testing.T) {
	handler := newTestRouter(t)

	rec := doRequest(t, handler, http.MethodGet, "/accounts/999/statement", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope commons.Response[[]models.OperationResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
	assert.Empty(t, *envelope.Data)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	handler := newTestRouter(t)
	account := createAccount(t, handler, `{"initialAmount":"100.00","currency":"EUR"}`)
	base := "/accounts/" + strconv.FormatInt(account.ID, 10)

	rec := doRequest(t, handler, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, handler, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
