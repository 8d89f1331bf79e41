package web_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instock/internal/domain"
	"instock/internal/session"
	"instock/internal/stockapi"
	"instock/internal/web"
	"instock/internal/web/templates"
)

// backendCall is one request the fake InStock API received.
type backendCall struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeAPI stands in for the backend REST service.
type fakeAPI struct {
	mu       sync.Mutex
	calls    []backendCall
	handlers map[string]func(w http.ResponseWriter)
	server   *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{handlers: map[string]func(w http.ResponseWriter){}}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := backendCall{Method: r.Method, Path: r.URL.Path}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &call.Body)
		}
		api.mu.Lock()
		api.calls = append(api.calls, call)
		handler, ok := api.handlers[r.Method+" "+r.URL.Path]
		api.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w)
	}))
	t.Cleanup(api.server.Close)
	return api
}

func (a *fakeAPI) respond(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handlers[method+" "+path] = func(w http.ResponseWriter) {
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}
}

func (a *fakeAPI) recorded() []backendCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]backendCall(nil), a.calls...)
}

func (a *fakeAPI) callsTo(method, path string) []backendCall {
	var out []backendCall
	for _, c := range a.recorded() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func newTestServer(t *testing.T, api *fakeAPI) *web.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := stockapi.New(api.server.URL, stockapi.DefaultMessages(), logger)
	return web.NewServer(client, session.NewCookieStore("test"), templates.FS, logger)
}

func get(t *testing.T, srv *web.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, srv *web.Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func validWarehouseForm() url.Values {
	return url.Values{
		"warehouseName":   {"Manhattan"},
		"address":         {"503 Broadway"},
		"city":            {"New York"},
		"country":         {"USA"},
		"contactName":     {"Parmin Aujla"},
		"contactPosition": {"Warehouse Manager"},
		"contactPhone":    {"+1 (646) 123-1234"},
		"contactEmail":    {"paujla@instock.com"},
	}
}

func TestRootRedirectsToWarehouses(t *testing.T) {
	srv := newTestServer(t, newFakeAPI(t))
	rec := get(t, srv, "/")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/warehouses", rec.Header().Get("Location"))
}

func TestListWarehouses(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/warehouses", http.StatusOK, []domain.Warehouse{
		{ID: 1, WarehouseName: "Manhattan", City: "New York"},
		{ID: 2, WarehouseName: "Seattle", City: "Seattle"},
	})
	srv := newTestServer(t, api)

	rec := get(t, srv, "/warehouses")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Manhattan")
	assert.Contains(t, body, "Seattle")
}

func TestListWarehousesSearchFilters(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/warehouses", http.StatusOK, []domain.Warehouse{
		{ID: 1, WarehouseName: "Manhattan", City: "New York"},
		{ID: 2, WarehouseName: "Seattle", City: "Seattle"},
	})
	srv := newTestServer(t, api)

	rec := get(t, srv, "/warehouses?q=seattle")

	body := rec.Body.String()
	assert.Contains(t, body, "Seattle")
	assert.NotContains(t, body, "Manhattan")
}

func TestWarehouseDetailIncludesInventory(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/warehouses/1", http.StatusOK, domain.Warehouse{ID: 1, WarehouseName: "Manhattan"})
	api.respond("GET", "/warehouses/1/inventories", http.StatusOK, []domain.InventoryItem{
		{ID: 7, ItemName: "Television", Status: "In Stock", Quantity: 500},
	})
	srv := newTestServer(t, api)

	rec := get(t, srv, "/warehouses/1")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Manhattan")
	assert.Contains(t, body, "Television")
}

func TestEditFormNotFoundRendersErrorView(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/warehouses/999", http.StatusNotFound, nil)
	srv := newTestServer(t, api)

	rec := get(t, srv, "/warehouses/999/edit")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Warehouse not found. Please try again.")
	// The form itself must not render.
	assert.NotContains(t, body, "Warehouse Name")
	assert.NotContains(t, body, "<form")
}

func TestCreateWarehouseSubmitsOnce(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("POST", "/warehouses/add", http.StatusCreated, nil)
	srv := newTestServer(t, api)

	rec := postForm(t, srv, "/warehouses/add", validWarehouseForm())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Success!")

	posts := api.callsTo("POST", "/warehouses/add")
	require.Len(t, posts, 1)
	assert.Equal(t, "Manhattan", posts[0].Body["warehouse_name"])
	assert.Equal(t, "503 Broadway", posts[0].Body["address"])
	assert.Equal(t, "New York", posts[0].Body["city"])
	assert.Equal(t, "USA", posts[0].Body["country"])
	assert.Equal(t, "Parmin Aujla", posts[0].Body["contact_name"])
	assert.Equal(t, "Warehouse Manager", posts[0].Body["contact_position"])
	assert.Equal(t, "+1 (646) 123-1234", posts[0].Body["contact_phone"])
	assert.Equal(t, "paujla@instock.com", posts[0].Body["contact_email"])
}

func TestCreateWarehouseValidationFailureSkipsBackend(t *testing.T) {
	api := newFakeAPI(t)
	srv := newTestServer(t, api)

	form := validWarehouseForm()
	form.Set("contactEmail", "not-an-email")
	rec := postForm(t, srv, "/warehouses/add", form)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	// Data stays intact and the offending field is flagged.
	body := rec.Body.String()
	assert.Contains(t, body, "not-an-email")
	assert.Contains(t, body, "error-label")
	// No request reached the backend.
	assert.Empty(t, api.recorded())
}

func TestCreateWarehouseBackendFailureKeepsFormIntact(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("POST", "/warehouses/add", http.StatusInternalServerError, nil)
	srv := newTestServer(t, api)

	rec := postForm(t, srv, "/warehouses/add", validWarehouseForm())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Something went wrong on our end. We're working to fix it.")
	// The form re-renders with the submitted values; no field is marked.
	assert.Contains(t, body, "Manhattan")
	assert.NotContains(t, body, "error-label")
}

func TestUpdateWarehousePutsToEditPath(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("PUT", "/warehouses/3/edit", http.StatusOK, nil)
	srv := newTestServer(t, api)

	rec := postForm(t, srv, "/warehouses/3/edit", validWarehouseForm())

	require.Equal(t, http.StatusOK, rec.Code)
	puts := api.callsTo("PUT", "/warehouses/3/edit")
	require.Len(t, puts, 1)
	assert.Equal(t, "Manhattan", puts[0].Body["warehouse_name"])
}

func TestDeleteWarehouseRedirects(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("DELETE", "/warehouses/4", http.StatusNoContent, nil)
	srv := newTestServer(t, api)

	req := httptest.NewRequest(http.MethodDelete, "/warehouses/4", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/warehouses", rec.Header().Get("HX-Redirect"))
	require.Len(t, api.callsTo("DELETE", "/warehouses/4"), 1)
}

func TestDeleteMissingWarehouseSurfacesError(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("DELETE", "/warehouses/4", http.StatusNotFound, nil)
	srv := newTestServer(t, api)

	req := httptest.NewRequest(http.MethodDelete, "/warehouses/4", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Warehouse not found. Please try again.")
}

func TestCreateInventoryResolvesWarehouseID(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/warehouses", http.StatusOK, []domain.Warehouse{
		{ID: 1, WarehouseName: "Manhattan"},
		{ID: 6, WarehouseName: "Seattle"},
	})
	api.respond("POST", "/inventories/add", http.StatusCreated, nil)
	srv := newTestServer(t, api)

	rec := postForm(t, srv, "/inventory/add", url.Values{
		"itemName":    {"Television"},
		"description": {"A 50 inch LED TV"},
		"category":    {"Electronics"},
		"status":      {"In Stock"},
		"quantity":    {"500"},
		"warehouse":   {"Seattle"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	posts := api.callsTo("POST", "/inventories/add")
	require.Len(t, posts, 1)
	assert.Equal(t, "Television", posts[0].Body["item_name"])
	assert.Equal(t, "In Stock", posts[0].Body["status"])
	assert.Equal(t, float64(500), posts[0].Body["quantity"])
	assert.Equal(t, float64(6), posts[0].Body["warehouse_id"])
}

func TestCreateInventoryOutOfStockCoercesQuantity(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/warehouses", http.StatusOK, []domain.Warehouse{
		{ID: 1, WarehouseName: "Manhattan"},
	})
	api.respond("POST", "/inventories/add", http.StatusCreated, nil)
	srv := newTestServer(t, api)

	rec := postForm(t, srv, "/inventory/add", url.Values{
		"itemName":    {"Hoses"},
		"description": {"Garden hoses"},
		"category":    {"Gear"},
		"status":      {"Out of Stock"},
		"quantity":    {""},
		"warehouse":   {"Manhattan"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	posts := api.callsTo("POST", "/inventories/add")
	require.Len(t, posts, 1)
	assert.Equal(t, float64(0), posts[0].Body["quantity"])
}

func TestCreateInventoryInStockZeroQuantityFails(t *testing.T) {
	api := newFakeAPI(t)
	srv := newTestServer(t, api)

	rec := postForm(t, srv, "/inventory/add", url.Values{
		"itemName":    {"Television"},
		"description": {"A 50 inch LED TV"},
		"category":    {"Electronics"},
		"status":      {"In Stock"},
		"quantity":    {"0"},
		"warehouse":   {"Manhattan"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Quantity must be a positive number")
}

func TestInventoryFormLoadsOptions(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/inventories/categories", http.StatusOK, []domain.Option{
		{ID: "1", Value: "Electronics"},
	})
	api.respond("GET", "/warehouses", http.StatusOK, []domain.Warehouse{
		{ID: 1, WarehouseName: "Manhattan"},
	})
	srv := newTestServer(t, api)

	rec := get(t, srv, "/inventory/add")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Electronics")
	assert.Contains(t, body, "Manhattan")
}

func TestPhoneFormatFragment(t *testing.T) {
	srv := newTestServer(t, newFakeAPI(t))

	rec := postForm(t, srv, "/phone-format", url.Values{
		"contactPhone": {"11234"},
		"caret":        {"5"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="+1 (1234"`)
}

func TestWelcomeBannerShowsOncePerSession(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/warehouses", http.StatusOK, []domain.Warehouse{})
	srv := newTestServer(t, api)

	first := get(t, srv, "/warehouses")
	assert.Contains(t, first.Body.String(), "Welcome to InStock!")

	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/warehouses", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.NotContains(t, rec.Body.String(), "Welcome to InStock!")
}

func TestRequestIDHeader(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/warehouses", http.StatusOK, []domain.Warehouse{})
	srv := newTestServer(t, api)

	rec := get(t, srv, "/warehouses")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/warehouses", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-1")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "caller-supplied-1", rec.Header().Get("X-Request-ID"))
}
