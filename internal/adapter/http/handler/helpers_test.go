package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"peer-wallet/internal/adapter/http/middleware"
	"peer-wallet/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type call struct {
	method   string
	body     interface{} // marshalled unless it is a string
	personID uuid.UUID   // uuid.Nil = unauthenticated
	params   gin.Params
	query    string
	headers  map[string]string
}

func serve(h gin.HandlerFunc, cl call) *httptest.ResponseRecorder {
	var raw []byte
	switch b := cl.body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	default:
		raw, _ = json.Marshal(b)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(cl.method, "/"+cl.query, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	for k, v := range cl.headers {
		c.Request.Header.Set(k, v)
	}
	c.Params = cl.params
	if cl.personID != uuid.Nil {
		c.Set(middleware.CtxPersonID, cl.personID)
	}

	h(c)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "body has no data object: %s", w.Body.String())
	return data
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error_code"].(string)
	return code
}

func newAccount(t *testing.T, username, currency, balance string) *domain.Account {
	t.Helper()
	person, err := domain.NewPerson(username+" name", currency)
	require.NoError(t, err)
	if balance != "0" {
		require.NoError(t, person.Wallet().AddFund(decimal.RequireFromString(balance)))
	}
	return &domain.Account{
		ID:        uuid.New(),
		Username:  username,
		Person:    person,
		CreatedAt: fixedTime,
		UpdatedAt: fixedTime,
	}
}

func newEntry(t *testing.T, name, productType string, prices ...domain.Price) *domain.CatalogEntry {
	t.Helper()
	p, err := domain.NewProduct(name, prices, productType)
	require.NoError(t, err)
	return &domain.CatalogEntry{ID: uuid.New(), Product: p, CreatedAt: fixedTime, UpdatedAt: fixedTime}
}

func price(currency, amount string) domain.Price {
	return domain.Price{Currency: domain.Currency(currency), Amount: decimal.RequireFromString(amount)}
}

func idParam(id uuid.UUID) gin.Params {
	return gin.Params{{Key: "id", Value: id.String()}}
}
