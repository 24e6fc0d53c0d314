package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/royalkeys/royalkeys/api"
	"github.com/royalkeys/royalkeys/assistant"
	"github.com/royalkeys/royalkeys/catalog"
	"github.com/royalkeys/royalkeys/checkout"
	"github.com/royalkeys/royalkeys/router"
	"github.com/royalkeys/royalkeys/session"
	"github.com/royalkeys/royalkeys/storage/memory"
)

type testEnv struct {
	t        *testing.T
	server   *httptest.Server
	client   *http.Client
	sessions *session.Manager
	nav      *router.Router
}

func newTestEnv(t *testing.T, opts ...api.Option) *testEnv {
	t.Helper()

	cat := catalog.Default()
	sessions := session.NewManager(memory.NewRepository())
	nav := router.New(cat, sessions)

	base := []api.Option{
		api.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		api.WithProcessor(&checkout.SimulatedProcessor{Delay: time.Millisecond}),
	}
	a := api.New(nav, cat, sessions, append(base, opts...)...)

	r := chi.NewRouter()
	r.Mount("/api/v1", a.Router())
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		t:        t,
		server:   server,
		client:   &http.Client{Jar: jar},
		sessions: sessions,
		nav:      nav,
	}
}

// doJSON sends a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil.
func (e *testEnv) doJSON(method, path string, body any, out any) *http.Response {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(e.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(e.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestListCatalog(t *testing.T) {
	env := newTestEnv(t)

	var got api.ListCatalogResponse
	resp := env.doJSON(http.MethodGet, "/api/v1/catalog", nil, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, got.Products, catalog.Default().Len())
	assert.Equal(t, catalog.Default().Len(), got.Pagination.TotalCount)
}

func TestListCatalogFilters(t *testing.T) {
	env := newTestEnv(t)

	var got api.ListCatalogResponse
	resp := env.doJSON(http.MethodGet, "/api/v1/catalog?category=Subscriptions", nil, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, got.Products)
	for _, p := range got.Products {
		assert.Equal(t, catalog.CategorySubscriptions, p.Category)
	}

	// A search term wins over the category parameter.
	resp = env.doJSON(http.MethodGet, "/api/v1/catalog?q=windows&category=Subscriptions", nil, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, got.Products)
	for _, p := range got.Products {
		assert.NotEqual(t, catalog.CategorySubscriptions, p.Category)
	}

	resp = env.doJSON(http.MethodGet, "/api/v1/catalog?category=Bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListCatalogPagination(t *testing.T) {
	env := newTestEnv(t)

	var page1 api.ListCatalogResponse
	resp := env.doJSON(http.MethodGet, "/api/v1/catalog?limit=5", nil, &page1)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, page1.Products, 5)

	var page2 api.ListCatalogResponse
	resp = env.doJSON(http.MethodGet, "/api/v1/catalog?limit=5&offset=5", nil, &page2)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, page2.Products)
	assert.NotEqual(t, page1.Products[0].ID, page2.Products[0].ID)
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)

	var got api.ListCategoriesResponse
	resp := env.doJSON(http.MethodGet, "/api/v1/catalog/categories", nil, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, catalog.Categories(), got.Categories)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)

	var got catalog.Product
	resp := env.doJSON(http.MethodGet, "/api/v1/catalog/sw-win11", nil, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sw-win11", got.ID)

	resp = env.doJSON(http.MethodGet, "/api/v1/catalog/no-such-id", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNavigationFlow(t *testing.T) {
	env := newTestEnv(t)

	var state api.NavStateResponse
	resp := env.doJSON(http.MethodGet, "/api/v1/nav/state", nil, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, router.ViewHome, state.View)

	resp = env.doJSON(http.MethodPost, "/api/v1/nav/category",
		api.NavCategoryRequest{Category: catalog.CategoryGames}, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, router.ViewCatalog, state.View)
	assert.Equal(t, catalog.CategoryGames, state.SelectedCategory)

	resp = env.doJSON(http.MethodPost, "/api/v1/nav/search",
		api.NavSearchRequest{Term: "elden"}, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "elden", state.SearchTerm)
	require.NotEmpty(t, state.Products)

	resp = env.doJSON(http.MethodPost, "/api/v1/nav/product",
		api.NavProductRequest{ProductID: state.Products[0].ID}, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, router.ViewProduct, state.View)
	require.NotNil(t, state.SelectedProduct)

	resp = env.doJSON(http.MethodPost, "/api/v1/nav/home", nil, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, router.ViewHome, state.View)
	assert.Nil(t, state.SelectedProduct)
	assert.Empty(t, state.SearchTerm)
}

func TestNavValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doJSON(http.MethodPost, "/api/v1/nav/category",
		api.NavCategoryRequest{Category: "Bogus"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.doJSON(http.MethodPost, "/api/v1/nav/product",
		api.NavProductRequest{ProductID: "no-such-id"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.doJSON(http.MethodPost, "/api/v1/nav/info",
		api.NavInfoRequest{Page: "blog"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNavInfoAndDashboard(t *testing.T) {
	env := newTestEnv(t)

	var state api.NavStateResponse
	resp := env.doJSON(http.MethodPost, "/api/v1/nav/info",
		api.NavInfoRequest{Page: router.InfoFAQ}, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, router.ViewInfo, state.View)
	assert.Equal(t, router.InfoFAQ, state.ActiveInfoPage)

	resp = env.doJSON(http.MethodPost, "/api/v1/nav/dashboard", nil, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, router.ViewDashboard, state.View)
}

func TestGetSession(t *testing.T) {
	env := newTestEnv(t)

	var got api.SessionResponse
	resp := env.doJSON(http.MethodGet, "/api/v1/session", nil, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "customer@royalkeys.io", got.Email)
	assert.True(t, got.IsLoggedIn)
	assert.Zero(t, got.KeyCount)
}

func TestCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)

	var state api.NavStateResponse
	env.doJSON(http.MethodPost, "/api/v1/nav/product",
		api.NavProductRequest{ProductID: "sub-xbox"}, &state)

	resp := env.doJSON(http.MethodPost, "/api/v1/checkout", nil, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, router.ViewCheckout, state.View)

	var result api.SubmitCheckoutResponse
	resp = env.doJSON(http.MethodPost, "/api/v1/checkout/submit",
		api.SubmitCheckoutRequest{Payment: checkout.PaymentDetails{
			CardNumber: "4242424242424242",
			Expiry:     "12/28",
			CVC:        "123",
			Name:       "Ada Lovelace",
		}}, &result)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "sub-xbox", result.Key.ProductID)
	assert.Equal(t, router.ViewDashboard, result.View)

	var keys api.ListKeysResponse
	resp = env.doJSON(http.MethodGet, "/api/v1/session/keys", nil, &keys)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, keys.Keys, 1)
	assert.Equal(t, result.Key.ID, keys.Keys[0].ID)
}

func TestCheckoutWithoutSelection(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doJSON(http.MethodPost, "/api/v1/checkout", nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.doJSON(http.MethodPost, "/api/v1/checkout/submit",
		api.SubmitCheckoutRequest{Payment: checkout.PaymentDetails{CardNumber: "4242"}}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCheckoutInvalidDetailsMutatesNothing(t *testing.T) {
	env := newTestEnv(t)

	var state api.NavStateResponse
	env.doJSON(http.MethodPost, "/api/v1/nav/product",
		api.NavProductRequest{ProductID: "sub-xbox"}, &state)
	env.doJSON(http.MethodPost, "/api/v1/checkout", nil, &state)

	resp := env.doJSON(http.MethodPost, "/api/v1/checkout/submit",
		api.SubmitCheckoutRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// No key was minted and the checkout can still be cancelled.
	assert.Empty(t, env.sessions.User().Keys)
	resp = env.doJSON(http.MethodPost, "/api/v1/checkout/cancel", nil, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, router.ViewProduct, state.View)
}

// hookProcessor runs an arbitrary function as the payment step.
type hookProcessor struct {
	fn func(ctx context.Context, p catalog.Product, d checkout.PaymentDetails) error
}

func (h *hookProcessor) Submit(ctx context.Context, p catalog.Product, d checkout.PaymentDetails) error {
	return h.fn(ctx, p, d)
}

func TestSubmitCheckoutSelectionChangedDuringPayment(t *testing.T) {
	hook := &hookProcessor{}
	env := newTestEnv(t, api.WithProcessor(hook))
	hook.fn = func(ctx context.Context, p catalog.Product, d checkout.PaymentDetails) error {
		// Navigation moves to another product while the payment settles.
		return env.nav.SelectProduct("sw-win11")
	}

	var state api.NavStateResponse
	env.doJSON(http.MethodPost, "/api/v1/nav/product",
		api.NavProductRequest{ProductID: "sub-xbox"}, &state)
	env.doJSON(http.MethodPost, "/api/v1/checkout", nil, &state)

	resp := env.doJSON(http.MethodPost, "/api/v1/checkout/submit",
		api.SubmitCheckoutRequest{Payment: checkout.PaymentDetails{CardNumber: "4242"}}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The paid-for product is no longer selected, so no key is minted for
	// the product that replaced it.
	assert.Empty(t, env.sessions.User().Keys)
}

type failingProcessor struct{}

func (failingProcessor) Submit(ctx context.Context, p catalog.Product, d checkout.PaymentDetails) error {
	return context.DeadlineExceeded
}

func TestCheckoutProcessorFailure(t *testing.T) {
	env := newTestEnv(t, api.WithProcessor(failingProcessor{}))

	var state api.NavStateResponse
	env.doJSON(http.MethodPost, "/api/v1/nav/product",
		api.NavProductRequest{ProductID: "sub-xbox"}, &state)
	env.doJSON(http.MethodPost, "/api/v1/checkout", nil, &state)

	resp := env.doJSON(http.MethodPost, "/api/v1/checkout/submit",
		api.SubmitCheckoutRequest{Payment: checkout.PaymentDetails{CardNumber: "4242"}}, nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Empty(t, env.sessions.User().Keys)
}

type stubAssistant struct {
	reply string
}

func (s stubAssistant) Complete(ctx context.Context, prompt string) (string, error) {
	return s.reply, nil
}

var _ assistant.Completer = stubAssistant{}

func TestAssistantChat(t *testing.T) {
	env := newTestEnv(t, api.WithAssistant(stubAssistant{reply: "Try Windows 11 Pro."}))

	var got api.AssistantChatResponse
	resp := env.doJSON(http.MethodPost, "/api/v1/assistant/chat",
		api.AssistantChatRequest{Prompt: "which windows key?"}, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Try Windows 11 Pro.", got.Reply)
}

func TestAssistantChatValidation(t *testing.T) {
	env := newTestEnv(t, api.WithAssistant(stubAssistant{}))

	resp := env.doJSON(http.MethodPost, "/api/v1/assistant/chat",
		api.AssistantChatRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAssistantChatNotConfigured(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doJSON(http.MethodPost, "/api/v1/assistant/chat",
		api.AssistantChatRequest{Prompt: "hello"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestOpenAPISpecServed(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.Get(env.server.URL + "/api/v1/openapi.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "openapi:")
}
