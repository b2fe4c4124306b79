package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/primemall-cli/internal/adapters/kv/file"
	tomlrepo "github.com/bnema/primemall-cli/internal/adapters/repo/toml"
	"github.com/bnema/primemall-cli/internal/application"
	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/ports"
	"github.com/bnema/primemall-cli/internal/ports/mocks"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testContract = "0x00000000000000000000000000000000000000c0"

type apiFixture struct {
	server    *httptest.Server
	connector *mocks.MockLedgerConnector
	ledger    *mocks.MockLedgerClient
}

func newAPIFixture(t *testing.T, withLedger bool) apiFixture {
	t.Helper()

	logger, _ := test.NewNullLogger()

	v := viper.New()
	v.Set(tomlrepo.CatalogPathKey, filepath.Join(t.TempDir(), "catalog.toml"))
	catalog, err := tomlrepo.NewRepository(v)
	require.NoError(t, err)

	store := application.NewStoreService(application.NewSessionStore(file.NewStore(t.TempDir())), catalog, logger)

	f := apiFixture{}
	var connector ports.LedgerConnector
	if withLedger {
		f.connector = mocks.NewMockLedgerConnector(t)
		f.ledger = mocks.NewMockLedgerClient(t)
		connector = f.connector
	}
	knowledge := application.NewKnowledgeClient(connector, application.StaticCredential("0xkey"),
		application.KnowledgeClientConfig{ContractAddress: testContract}, logger, ports.SystemClock{})

	srv := NewServer(store, knowledge, application.NewFAQBook(knowledge, nil), catalog, logger)
	f.server = httptest.NewServer(srv.Handler())
	t.Cleanup(f.server.Close)

	return f
}

func (f apiFixture) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}

	return resp, out
}

func errorMessage(t *testing.T, body map[string]any) string {
	t.Helper()

	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error body, got %v", body)
	msg, _ := errBody["message"].(string)
	return msg
}

func TestHealthAndRequestID(t *testing.T) {
	f := newAPIFixture(t, false)

	resp, body := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	f := newAPIFixture(t, false)
	f.do(t, http.MethodGet, "/api/knowledge", "")

	resp, err := f.server.Client().Get(f.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
}

func TestCatalogListsDemoProducts(t *testing.T) {
	f := newAPIFixture(t, false)

	resp, body := f.do(t, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	products, ok := body["products"].([]any)
	require.True(t, ok)
	assert.Len(t, products, len(domain.DemoCatalog))
	first := products[0].(map[string]any)
	assert.Equal(t, "1", first["id"])
	assert.Equal(t, "$199.99", first["price"])
}

func TestCartRequiresSession(t *testing.T) {
	f := newAPIFixture(t, false)

	resp, body := f.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"1"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, domain.ErrNotAuthenticated.Error(), errorMessage(t, body))

	resp, body = f.do(t, http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["account"])
}

func TestShoppingFlow(t *testing.T) {
	f := newAPIFixture(t, false)

	resp, body := f.do(t, http.MethodPost, "/api/session/signup", `{"name":"Ada","email":"ada@example.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(domain.InitialFunds), body["funds_cents"])

	resp, body = f.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(199_99), body["total_cents"])
	account := body["account"].(map[string]any)
	assert.Equal(t, float64(domain.InitialFunds-199_99), account["funds_cents"])

	resp, body = f.do(t, http.MethodPut, "/api/cart/items/1", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["count"])

	resp, body = f.do(t, http.MethodPut, "/api/cart/items/1", `{"quantity":99}`)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, domain.ErrInsufficientFunds.Error(), errorMessage(t, body))

	resp, body = f.do(t, http.MethodPost, "/api/cart/checkout", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3*199_99), body["spent_cents"])
	assert.Equal(t, float64(domain.InitialFunds-3*199_99), body["remaining_cents"])

	resp, _ = f.do(t, http.MethodPost, "/api/cart/checkout", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPost, "/api/session/logout", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRemoveAndClearRefundFunds(t *testing.T) {
	f := newAPIFixture(t, false)
	f.do(t, http.MethodPost, "/api/session/login", `{"email":"bob@example.com","password":"pw"}`)
	f.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"1"}`)
	f.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"3"}`)

	resp, body := f.do(t, http.MethodDelete, "/api/cart/items/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(129_99), body["total_cents"])

	resp, body = f.do(t, http.MethodPost, "/api/cart/clear", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["total_cents"])
	account := body["account"].(map[string]any)
	assert.Equal(t, float64(domain.InitialFunds), account["funds_cents"])
}

func TestRequestValidation(t *testing.T) {
	f := newAPIFixture(t, false)

	testCases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "bad email", method: http.MethodPost, path: "/api/session/signup", body: `{"name":"A","email":"nope"}`, status: http.StatusBadRequest},
		{name: "malformed json", method: http.MethodPost, path: "/api/session/login", body: `{`, status: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: "/api/chat", body: `{"msg":"hi"}`, status: http.StatusBadRequest},
		{name: "missing product", method: http.MethodPost, path: "/api/cart/items", body: `{}`, status: http.StatusBadRequest},
		{name: "missing quantity", method: http.MethodPut, path: "/api/cart/items/1", body: `{}`, status: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := f.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestOversizedQuantityLeavesCartUntouched(t *testing.T) {
	f := newAPIFixture(t, false)
	f.do(t, http.MethodPost, "/api/session/login", `{"email":"bob@example.com"}`)
	f.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"5"}`)

	resp, body := f.do(t, http.MethodPut, "/api/cart/items/5", `{"quantity":4611686018427387905}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, domain.ErrInvalidQuantity.Error(), errorMessage(t, body))

	resp, body = f.do(t, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(79_99), body["total_cents"])
	account := body["account"].(map[string]any)
	assert.Equal(t, float64(domain.InitialFunds-79_99), account["funds_cents"])
}

func TestUnknownProductIsNotFound(t *testing.T) {
	f := newAPIFixture(t, false)
	f.do(t, http.MethodPost, "/api/session/login", `{"email":"bob@example.com"}`)

	resp, _ := f.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"404"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFAQServesFallbackWithoutLedger(t *testing.T) {
	f := newAPIFixture(t, false)

	resp, body := f.do(t, http.MethodGet, "/api/faq", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	questions := body["questions"].([]any)
	require.Len(t, questions, len(domain.FAQCatalog))
	assert.Nil(t, questions[0].(map[string]any)["answer"])

	resp, body = f.do(t, http.MethodGet, "/api/faq/payment_methods", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.FallbackAnswer("payment_methods"), body["answer"])
}

func TestFAQUnknownKeyGetsSupportAnswer(t *testing.T) {
	f := newAPIFixture(t, false)

	resp, body := f.do(t, http.MethodGet, "/api/faq/warranty", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "warranty", body["key"])
	assert.Contains(t, body["answer"], "support@primemall.com")

	_, body = f.do(t, http.MethodGet, "/api/faq", "")
	assert.Len(t, body["questions"].([]any), len(domain.FAQCatalog))
}

func TestKnowledgeSectionsFromFallback(t *testing.T) {
	f := newAPIFixture(t, false)

	resp, body := f.do(t, http.MethodGet, "/api/knowledge/sections", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sections := body["sections"].([]any)
	require.NotEmpty(t, sections)
	assert.Equal(t, "About Prime Mall", sections[0].(map[string]any)["title"])

	resp, body = f.do(t, http.MethodGet, "/api/knowledge", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.FallbackKnowledge, body["text"])
}

func TestChatWithoutLedgerCouldNotSend(t *testing.T) {
	f := newAPIFixture(t, false)

	resp, body := f.do(t, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "could not send", errorMessage(t, body))

	resp, _ = f.do(t, http.MethodPost, "/api/chat", `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatReturnsDecodedReply(t *testing.T) {
	f := newAPIFixture(t, true)
	f.connector.EXPECT().Connect(mock.Anything, "0xkey").Return(f.ledger, nil).Once()
	f.ledger.EXPECT().Submit(mock.Anything, testContract, "chat_with_service", []any{"hello"}).Return("0xtx", nil).Once()
	f.ledger.EXPECT().GetReceipt(mock.Anything, domain.TxID("0xtx")).Return(domain.Receipt{
		TxID:   "0xtx",
		Status: domain.TxStatusAccepted,
		Body:   []byte(`{"consensus_data":{"leader_receipt":[{"result":{"payload":{"readable":"\"{\\\"response\\\":\\\"Hi\\\",\\\"intent\\\":\\\"greeting\\\"}\""}}}]}}`),
	}, nil).Once()

	resp, body := f.do(t, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hi", body["response"])
	assert.Equal(t, "greeting", body["intent"])
	assert.Equal(t, "hello", body["user_message"])
	assert.NotEmpty(t, body["id"])
}

func TestKnowledgeUpdateWithoutLedgerIsBadGateway(t *testing.T) {
	f := newAPIFixture(t, false)

	resp, _ := f.do(t, http.MethodPut, "/api/knowledge", `{"text":"About Prime Mall: new"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPut, "/api/knowledge", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
